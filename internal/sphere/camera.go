package sphere

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera manages orthographic projection of the unit sphere onto the image.
// Azimuth and Elevation are in degrees, matching the usual 3D-plot view angles.
type Camera struct {
	Azimuth, Elevation float64
	Zoom               float64

	right, up, eye r3.Vec
}

func NewCamera(azimuth, elevation float64) *Camera {
	c := &Camera{Azimuth: azimuth, Elevation: elevation, Zoom: 1.0}
	c.update()
	return c
}

func (c *Camera) update() {
	az := c.Azimuth * math.Pi / 180
	el := c.Elevation * math.Pi / 180
	c.eye = r3.Vec{X: math.Cos(el) * math.Cos(az), Y: math.Cos(el) * math.Sin(az), Z: math.Sin(el)}
	c.right = r3.Vec{X: -math.Sin(az), Y: math.Cos(az)}
	c.up = r3.Cross(c.eye, c.right)
}

// Depth is positive on the hemisphere facing the viewer.
func (c *Camera) Depth(p r3.Vec) float64 {
	return r3.Dot(p, c.eye)
}

// Project converts sphere coordinates to pixel coordinates for a square image
// of side size. Returns x, y and depth.
func (c *Camera) Project(p r3.Vec, size int) (int, int, float64) {
	radius := float64(size) * 0.38 * c.Zoom
	half := float64(size) / 2
	sx := half + r3.Dot(p, c.right)*radius
	sy := half - r3.Dot(p, c.up)*radius
	return int(math.Round(sx)), int(math.Round(sy)), c.Depth(p)
}

// Radius is the on-screen radius of the unit sphere in pixels.
func (c *Camera) Radius(size int) int {
	return int(math.Round(float64(size) * 0.38 * c.Zoom))
}
