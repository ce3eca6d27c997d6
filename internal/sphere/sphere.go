package sphere

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"sort"

	"github.com/san-kum/blochsim/internal/qstate"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	DefaultSize      = 400
	MaxSize          = 4096
	DefaultAzimuth   = -60.0
	DefaultElevation = 30.0

	wireSegments = 96
	backFade     = 0.65
)

type Options struct {
	Size      int     `yaml:"size" toml:"size"`
	Theme     string  `yaml:"theme" toml:"theme"`
	Azimuth   float64 `yaml:"azimuth" toml:"azimuth"`
	Elevation float64 `yaml:"elevation" toml:"elevation"`
}

func DefaultOptions() Options {
	return Options{
		Size:      DefaultSize,
		Theme:     ThemeLight.Name,
		Azimuth:   DefaultAzimuth,
		Elevation: DefaultElevation,
	}
}

// Sphere accumulates points and state vectors and renders them on demand.
type Sphere struct {
	size   int
	theme  Theme
	camera *Camera

	points  []r3.Vec
	vectors []r3.Vec
	style   PointStyle

	canvas *Canvas
}

func New(opts Options) (*Sphere, error) {
	if opts.Size <= 0 || opts.Size > MaxSize {
		return nil, fmt.Errorf("%w: image size %d (max %d)", ErrSize, opts.Size, MaxSize)
	}
	return &Sphere{
		size:    opts.Size,
		theme:   GetTheme(opts.Theme),
		camera:  NewCamera(opts.Azimuth, opts.Elevation),
		points:  make([]r3.Vec, 0),
		vectors: make([]r3.Vec, 0),
		style:   DefaultPointStyle(),
	}, nil
}

func (s *Sphere) Size() int    { return s.size }
func (s *Sphere) Theme() Theme { return s.theme }

func (s *Sphere) AddPoints(pts ...r3.Vec) { s.points = append(s.points, pts...) }

// AddStates adds the Bloch vector of each state to the vector overlay.
func (s *Sphere) AddStates(states ...qstate.State) {
	for _, st := range states {
		s.vectors = append(s.vectors, st.Bloch())
	}
}

// SetPointStyle replaces the style of the whole point set, including points
// added before the call.
func (s *Sphere) SetPointStyle(style PointStyle) { s.style = style }

func (s *Sphere) PointStyle() PointStyle { return s.style }

func (s *Sphere) Points() []r3.Vec {
	out := make([]r3.Vec, len(s.points))
	copy(out, s.points)
	return out
}

func (s *Sphere) Vectors() []r3.Vec {
	out := make([]r3.Vec, len(s.vectors))
	copy(out, s.vectors)
	return out
}

// Clear drops all points and vectors and restores the default point style.
// The last rendered image is kept.
func (s *Sphere) Clear() {
	s.points = s.points[:0]
	s.vectors = s.vectors[:0]
	s.style = DefaultPointStyle()
}

// Image returns the last rendered image, or nil before the first Render.
func (s *Sphere) Image() *image.RGBA {
	if s.canvas == nil {
		return nil
	}
	return s.canvas.Img
}

// Render draws the current contents and returns the image.
func (s *Sphere) Render() (*image.RGBA, error) {
	if err := s.style.Validate(); err != nil {
		return nil, err
	}
	pointColor, _ := ParseColor(s.style.Color)
	shape := markerShape(s.style.Marker)

	bg := RGBA(s.theme.Background)
	if s.canvas == nil {
		s.canvas = NewCanvas(s.size, s.size, bg)
	} else {
		s.canvas.Clear(bg)
	}

	s.drawWireframe()
	s.drawAxes()
	s.drawPoints(pointColor, shape)
	s.drawVectors()

	return s.canvas.Img, nil
}

// Save renders and writes the image as PNG to path.
func (s *Sphere) Save(path string) error {
	img, err := s.Render()
	if err != nil {
		return err
	}
	return WritePNG(path, img)
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// circle draws the great circle spanned by unit vectors a and b.
func (s *Sphere) circle(a, b r3.Vec, col color.RGBA) {
	bg := RGBA(s.theme.Background)
	back := fade(col, bg, backFade)

	prev := a
	for i := 1; i <= wireSegments; i++ {
		th := 2 * math.Pi * float64(i) / wireSegments
		p := r3.Add(r3.Scale(math.Cos(th), a), r3.Scale(math.Sin(th), b))

		x0, y0, d0 := s.camera.Project(prev, s.size)
		x1, y1, d1 := s.camera.Project(p, s.size)
		if (d0+d1)/2 < 0 {
			if i%2 == 0 {
				s.canvas.DrawLine(x0, y0, x1, y1, back)
			}
		} else {
			s.canvas.DrawLine(x0, y0, x1, y1, col)
		}
		prev = p
	}
}

func (s *Sphere) drawWireframe() {
	frame := RGBA(s.theme.Frame)
	ex, ey, ez := r3.Vec{X: 1}, r3.Vec{Y: 1}, r3.Vec{Z: 1}

	s.circle(ex, ey, frame) // equator
	s.circle(ex, ez, frame)
	s.circle(ey, ez, frame)

	// silhouette
	r := s.camera.Radius(s.size)
	c := s.size / 2
	s.canvas.FillShape(c, c, r, frame, func(dx, dy, r int) bool {
		d := dx*dx + dy*dy
		return d <= r*r && d >= (r-1)*(r-1)
	})
}

func (s *Sphere) drawAxes() {
	axis := RGBA(s.theme.Axis)
	for _, e := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		x0, y0, _ := s.camera.Project(r3.Scale(-1, e), s.size)
		x1, y1, _ := s.camera.Project(e, s.size)
		s.canvas.DrawLine(x0, y0, x1, y1, axis)
		s.canvas.FillCircle(x1, y1, 2, axis)
	}
}

type projected struct {
	x, y  int
	depth float64
}

func (s *Sphere) drawPoints(col color.RGBA, shape func(dx, dy, r int) bool) {
	if len(s.points) == 0 {
		return
	}
	proj := make([]projected, 0, len(s.points))
	for _, p := range s.points {
		x, y, d := s.camera.Project(p, s.size)
		proj = append(proj, projected{x, y, d})
	}
	// painter's algorithm: far points first
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })

	bg := RGBA(s.theme.Background)
	r := markerRadius(s.style.Size, s.size)
	for _, p := range proj {
		c := col
		if p.depth < 0 {
			c = fade(col, bg, backFade/2)
		}
		s.canvas.FillShape(p.x, p.y, r, c, shape)
	}
}

func (s *Sphere) drawVectors() {
	col := RGBA(s.theme.Vector)
	ox, oy, _ := s.camera.Project(r3.Vec{}, s.size)
	width := max(1, s.size/200)
	for _, v := range s.vectors {
		x, y, _ := s.camera.Project(v, s.size)
		s.canvas.DrawThickLine(ox, oy, x, y, width, col)
		s.canvas.FillCircle(x, y, width+2, col)
	}
}

func markerRadius(pointSize, imageSize int) int {
	return max(1, int(math.Round(float64(pointSize)*float64(imageSize)/500)))
}
