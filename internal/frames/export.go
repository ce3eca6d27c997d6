package frames

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/sphere"
	"gonum.org/v1/gonum/spatial/r3"
)

// RenderPoints adds the Bloch coordinates of each state to the sphere's point
// set and then sets style for the whole set. Calling it again restyles points
// added by earlier calls.
func RenderPoints(sp *sphere.Sphere, states []qstate.State, style sphere.PointStyle) {
	for _, s := range states {
		sp.AddPoints(r3.Vec{
			X: qstate.Expect(qstate.SigmaX(), s),
			Y: qstate.Expect(qstate.SigmaY(), s),
			Z: qstate.Expect(qstate.SigmaZ(), s),
		})
	}
	sp.SetPointStyle(style)
}

// Exporter renders one frame per state. Style is applied to the point
// history of every frame of this export.
type Exporter struct {
	Style  sphere.PointStyle
	Logger *slog.Logger
}

func NewExporter(style sphere.PointStyle, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{Style: style, Logger: logger}
}

// Export writes frame_<i>.png into dir for every state. Frame i shows the
// vector of states[i] over the points of states[0..i-1]. The sphere is left
// holding the points of every state.
func (e *Exporter) Export(ctx context.Context, states []qstate.State, sp *sphere.Sphere, dir *Dir) ([]string, error) {
	if dir.released {
		return nil, ErrReleased
	}
	if err := e.Style.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir.Path(), 0o755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}

	paths := make([]string, 0, len(states))
	for i, st := range states {
		select {
		case <-ctx.Done():
			return paths, ctx.Err()
		default:
		}

		sp.AddStates(st)
		img, err := sp.Render()
		if err != nil {
			return paths, fmt.Errorf("render frame %d: %w", i, err)
		}

		path := dir.FramePath(i)
		if err := sphere.WritePNG(path, img); err != nil {
			return paths, fmt.Errorf("write frame %d: %w", i, err)
		}
		paths = append(paths, path)

		sp.Clear()
		RenderPoints(sp, states[:i+1], e.Style)
	}

	e.Logger.Debug("frames exported", "dir", dir.Path(), "count", len(paths))
	return paths, nil
}
