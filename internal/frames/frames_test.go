package frames

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/blochsim/internal/qstate"
	"github.com/san-kum/blochsim/internal/sphere"
)

func testStates(n int) []qstate.State {
	states := make([]qstate.State, n)
	for i := range states {
		states[i] = qstate.FromBloch(math.Pi*float64(i)/float64(n), 0.3*float64(i))
	}
	return states
}

func testSphere(t *testing.T) *sphere.Sphere {
	t.Helper()
	sp, err := sphere.New(sphere.Options{Size: 48, Azimuth: -60, Elevation: 30})
	if err != nil {
		t.Fatalf("new sphere: %v", err)
	}
	return sp
}

func exportTo(t *testing.T, path string, n int) (*Dir, *sphere.Sphere, []string) {
	t.Helper()
	dir, err := Acquire(path)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	sp := testSphere(t)
	style := sphere.PointStyle{Color: "r", Marker: sphere.MarkerSquare, Size: 4}
	paths, err := NewExporter(style, nil).Export(context.Background(), testStates(n), sp, dir)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	return dir, sp, paths
}

func TestExportWritesContiguousFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames")
	dir, sp, paths := exportTo(t, path, 6)
	defer dir.Release()

	if len(paths) != 6 {
		t.Fatalf("expected 6 frames, got %d", len(paths))
	}
	for i, p := range paths {
		if filepath.Base(p) != Name(i) {
			t.Errorf("frame %d: expected %s, got %s", i, Name(i), filepath.Base(p))
		}
		if _, err := os.Stat(p); err != nil {
			t.Errorf("frame %d missing: %v", i, err)
		}
	}

	listed, err := dir.Frames()
	if err != nil {
		t.Fatalf("list frames: %v", err)
	}
	if len(listed) != 6 {
		t.Errorf("expected 6 listed frames, got %d", len(listed))
	}

	// the sphere keeps the full history in the export style
	if len(sp.Points()) != 6 {
		t.Errorf("expected 6 points on sphere, got %d", len(sp.Points()))
	}
	if sp.PointStyle().Color != "r" {
		t.Errorf("expected export style on sphere, got %+v", sp.PointStyle())
	}
	if len(sp.Vectors()) != 0 {
		t.Errorf("expected no vectors after export, got %d", len(sp.Vectors()))
	}
}

func TestExportRejectsInvalidStyle(t *testing.T) {
	dir, err := Acquire(filepath.Join(t.TempDir(), "frames"))
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer dir.Release()

	e := NewExporter(sphere.PointStyle{Color: "b", Marker: "x", Size: 3}, nil)
	if _, err := e.Export(context.Background(), testStates(2), testSphere(t), dir); !errors.Is(err, sphere.ErrMarker) {
		t.Errorf("expected ErrMarker, got %v", err)
	}
}

func TestExportCanceled(t *testing.T) {
	dir, err := Acquire(filepath.Join(t.TempDir(), "frames"))
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer dir.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	paths, err := NewExporter(sphere.DefaultPointStyle(), nil).Export(ctx, testStates(3), testSphere(t), dir)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no frames, got %d", len(paths))
	}
}

func TestRenderPointsLastStyleWins(t *testing.T) {
	sp := testSphere(t)
	RenderPoints(sp, testStates(2), sphere.PointStyle{Color: "r", Marker: "o", Size: 3})
	RenderPoints(sp, testStates(3), sphere.PointStyle{Color: "g", Marker: "s", Size: 6})

	if len(sp.Points()) != 5 {
		t.Errorf("expected 5 points, got %d", len(sp.Points()))
	}
	if got := sp.PointStyle(); got.Color != "g" || got.Marker != "s" || got.Size != 6 {
		t.Errorf("expected last style to win, got %+v", got)
	}

	p := sp.Points()[0]
	if math.Abs(p.Z-1) > 1e-12 {
		t.Errorf("expected first point at north pole, got %v", p)
	}
}

func TestAcquireBusy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames")
	first, err := Acquire(path)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	if _, err := Acquire(path); !errors.Is(err, ErrDirBusy) {
		t.Fatalf("expected ErrDirBusy, got %v", err)
	}

	if _, err := first.Release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	second, err := Acquire(path)
	if err != nil {
		t.Fatalf("reacquire failed: %v", err)
	}
	second.Release()
}

func TestAcquireClearsStaleFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames")
	old, _, _ := exportTo(t, path, 10)
	if status, err := old.Release(); err != nil || status != CleanupRetained {
		t.Fatalf("expected retained, got %v (%v)", status, err)
	}
	notes := filepath.Join(path, "notes.txt")
	if err := os.WriteFile(notes, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	dir, err := Acquire(path, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	defer dir.Release()

	listed, err := dir.Frames()
	if err != nil {
		t.Fatalf("list frames: %v", err)
	}
	if len(listed) != 0 {
		t.Errorf("expected stale frames removed, found %d", len(listed))
	}
	if _, err := os.Stat(notes); err != nil {
		t.Errorf("expected non-frame file kept: %v", err)
	}
	if !strings.Contains(buf.String(), "stale frames") {
		t.Errorf("expected stale frame warning, got %q", buf.String())
	}

	paths, err := NewExporter(sphere.DefaultPointStyle(), nil).Export(context.Background(), testStates(3), testSphere(t), dir)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	listed, _ = dir.Frames()
	if len(paths) != 3 || len(listed) != 3 {
		t.Errorf("expected exactly 3 frames, got %d written and %d listed", len(paths), len(listed))
	}
}

func TestReleaseKeepsLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames")
	dir, err := Acquire(path)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if _, err := dir.Release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(path, lockName)); err != nil {
		t.Errorf("expected lock file to remain: %v", err)
	}

	again, err := Acquire(path)
	if err != nil {
		t.Fatalf("reacquire failed: %v", err)
	}
	if _, err := Acquire(path); !errors.Is(err, ErrDirBusy) {
		t.Errorf("expected ErrDirBusy on the reused lock file, got %v", err)
	}
	again.Release()
}

func TestReleaseStatuses(t *testing.T) {
	t.Run("nothing", func(t *testing.T) {
		dir, err := Acquire(filepath.Join(t.TempDir(), "frames"))
		if err != nil {
			t.Fatalf("acquire failed: %v", err)
		}
		status, err := dir.Release()
		if err != nil || status != CleanupNothing {
			t.Errorf("expected nothing, got %v (%v)", status, err)
		}
	})

	t.Run("removed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "frames")
		dir, _, _ := exportTo(t, path, 4)
		dir.Commit()
		status, err := dir.Release()
		if err != nil || status != CleanupRemoved {
			t.Fatalf("expected removed, got %v (%v)", status, err)
		}
		entries, _ := os.ReadDir(path)
		if len(entries) != 1 || entries[0].Name() != lockName {
			t.Errorf("expected only the lock file, found %d entries", len(entries))
		}
	})

	t.Run("retained", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "frames")
		var buf bytes.Buffer
		dir, err := Acquire(path, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
		if err != nil {
			t.Fatalf("acquire failed: %v", err)
		}
		if _, err := NewExporter(sphere.DefaultPointStyle(), nil).Export(context.Background(), testStates(3), testSphere(t), dir); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		status, err := dir.Release()
		if err != nil || status != CleanupRetained {
			t.Fatalf("expected retained, got %v (%v)", status, err)
		}
		if !strings.Contains(buf.String(), "keeping frames") {
			t.Errorf("expected retained warning, got %q", buf.String())
		}
		if _, err := os.Stat(filepath.Join(path, Name(2))); err != nil {
			t.Errorf("expected frame kept: %v", err)
		}
	})

	t.Run("always clean", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "frames")
		dir, err := Acquire(path, WithAlwaysClean())
		if err != nil {
			t.Fatalf("acquire failed: %v", err)
		}
		if _, err := NewExporter(sphere.DefaultPointStyle(), nil).Export(context.Background(), testStates(2), testSphere(t), dir); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if status, _ := dir.Release(); status != CleanupRemoved {
			t.Errorf("expected removed, got %v", status)
		}
	})

	t.Run("double release", func(t *testing.T) {
		dir, _ := Acquire(filepath.Join(t.TempDir(), "frames"))
		dir.Release()
		if _, err := dir.Release(); !errors.Is(err, ErrReleased) {
			t.Errorf("expected ErrReleased, got %v", err)
		}
	})
}

func TestLoadAndCollect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frames")
	dir, _, _ := exportTo(t, path, 7)
	defer dir.Release()

	for _, i := range []int{2, 5} {
		if err := os.Remove(dir.FramePath(i)); err != nil {
			t.Fatalf("remove frame %d: %v", i, err)
		}
	}

	results := Load(dir, 7)
	if len(results) != 7 {
		t.Fatalf("expected 7 results, got %d", len(results))
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	images, skipped, err := Collect(results, SkipAndWarn, logger)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(images) != 5 {
		t.Errorf("expected 5 images, got %d", len(images))
	}
	if len(skipped) != 2 || skipped[0] != 2 || skipped[1] != 5 {
		t.Errorf("expected skipped [2 5], got %v", skipped)
	}
	if n := strings.Count(buf.String(), "frame not found"); n != 2 {
		t.Errorf("expected 2 warnings, got %d", n)
	}

	_, _, err = Collect(results, FailFast, logger)
	var missing *MissingFrameError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingFrameError, got %v", err)
	}
	if missing.Index != 2 {
		t.Errorf("expected first missing frame 2, got %d", missing.Index)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
		ok   bool
	}{
		{"skip", SkipAndWarn, true},
		{"", SkipAndWarn, true},
		{"fail", FailFast, true},
		{"explode", SkipAndWarn, false},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("%q: expected %v ok=%v, got %v err=%v", tt.in, tt.want, tt.ok, got, err)
		}
	}
}

func TestCleanupString(t *testing.T) {
	if CleanupRetained.String() != "retained" || CleanupNothing.String() != "nothing" {
		t.Error("unexpected cleanup names")
	}
}
