package sphere

import (
	"image"
	"image/color"
	"image/draw"
)

// Canvas is an RGBA pixel surface with simple raster primitives.
type Canvas struct {
	Width, Height int
	Img           *image.RGBA
}

func NewCanvas(w, h int, bg color.RGBA) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Img:    image.NewRGBA(image.Rect(0, 0, w, h)),
	}
	c.Clear(bg)
	return c
}

// Clear fills the canvas with bg.
func (c *Canvas) Clear(bg color.RGBA) {
	draw.Draw(c.Img, c.Img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
}

// Set paints a single pixel; out-of-bounds coordinates are ignored.
func (c *Canvas) Set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return
	}
	c.Img.SetRGBA(x, y, col)
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawThickLine stamps a square brush of side width along a Bresenham line.
func (c *Canvas) DrawThickLine(x0, y0, x1, y1, width int, col color.RGBA) {
	if width <= 1 {
		c.DrawLine(x0, y0, x1, y1, col)
		return
	}
	lo := -(width - 1) / 2
	hi := width / 2
	for ox := lo; ox <= hi; ox++ {
		for oy := lo; oy <= hi; oy++ {
			c.DrawLine(x0+ox, y0+oy, x1+ox, y1+oy, col)
		}
	}
}

// FillShape paints every pixel within radius r of (cx, cy) that inside accepts.
func (c *Canvas) FillShape(cx, cy, r int, col color.RGBA, inside func(dx, dy, r int) bool) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if inside(dx, dy, r) {
				c.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

func (c *Canvas) FillCircle(cx, cy, r int, col color.RGBA) {
	c.FillShape(cx, cy, r, col, inCircle)
}

func inCircle(dx, dy, r int) bool   { return dx*dx+dy*dy <= r*r }
func inSquare(dx, dy, r int) bool   { return true }
func inDiamond(dx, dy, r int) bool  { return absInt(dx)+absInt(dy) <= r }
func inTriangle(dx, dy, r int) bool { return 2*absInt(dx) <= dy+r }

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
