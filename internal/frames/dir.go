package frames

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/gofrs/flock"
)

// DefaultDir is the frame directory used when none is configured.
const DefaultDir = "frames"

const lockName = ".lock"

var framePattern = regexp.MustCompile(`^frame_(\d+)\.png$`)

// Name returns the file name of frame i.
func Name(i int) string {
	return fmt.Sprintf("frame_%d.png", i)
}

// Cleanup reports what Release did with the frame files.
type Cleanup int

const (
	// CleanupNothing means no frame files were present.
	CleanupNothing Cleanup = iota
	// CleanupRemoved means the frames were removed after a committed assembly.
	CleanupRemoved
	// CleanupRetained means the assembly never committed and frames were kept.
	CleanupRetained
)

func (c Cleanup) String() string {
	switch c {
	case CleanupNothing:
		return "nothing"
	case CleanupRemoved:
		return "removed"
	case CleanupRetained:
		return "retained"
	}
	return "cleanup(" + strconv.Itoa(int(c)) + ")"
}

type DirOption func(*Dir)

// WithAlwaysClean removes frames on Release even without Commit.
func WithAlwaysClean() DirOption {
	return func(d *Dir) { d.alwaysClean = true }
}

func WithLogger(logger *slog.Logger) DirOption {
	return func(d *Dir) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dir is an exclusively locked frame directory.
type Dir struct {
	path        string
	lock        *flock.Flock
	committed   bool
	released    bool
	alwaysClean bool
	logger      *slog.Logger
}

// Acquire creates path if needed and takes its lock. It fails with ErrDirBusy
// when another export holds the directory. Frames left by an earlier run are
// removed so the directory holds only what the new export writes.
func Acquire(path string, opts ...DirOption) (*Dir, error) {
	if path == "" {
		path = DefaultDir
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}

	d := &Dir{
		path:   path,
		lock:   flock.New(filepath.Join(path, lockName)),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock frame directory: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDirBusy, path)
	}

	stale, err := d.Frames()
	if err == nil && len(stale) > 0 {
		d.logger.Warn("removing stale frames", "dir", path, "frames", len(stale))
		err = removeFiles(stale)
	}
	if err != nil {
		return nil, errors.Join(fmt.Errorf("clear frame directory: %w", err), d.lock.Unlock())
	}
	return d, nil
}

func (d *Dir) Path() string { return d.path }

// FramePath returns the path of frame i inside the directory.
func (d *Dir) FramePath(i int) string {
	return filepath.Join(d.path, Name(i))
}

// Commit marks the assembly as verified; Release will then remove the frames.
func (d *Dir) Commit() { d.committed = true }

// Frames lists the frame files present, ordered by index.
func (d *Dir) Frames() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, err
	}

	type indexed struct {
		idx  int
		path string
	}
	found := make([]indexed, 0, len(entries))
	for _, e := range entries {
		m := framePattern.FindStringSubmatch(e.Name())
		if m == nil || e.IsDir() {
			continue
		}
		idx, _ := strconv.Atoi(m[1])
		found = append(found, indexed{idx, filepath.Join(d.path, e.Name())})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].idx < found[j].idx })

	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths, nil
}

// Release removes the directory contents when committed (or always-clean),
// keeps the frames otherwise, and drops the lock.
func (d *Dir) Release() (Cleanup, error) {
	if d.released {
		return CleanupNothing, ErrReleased
	}
	d.released = true

	frames, err := d.Frames()
	if err != nil {
		return CleanupNothing, errors.Join(err, d.unlock())
	}

	switch {
	case len(frames) == 0:
		return CleanupNothing, d.unlock()
	case d.committed || d.alwaysClean:
		removeErr := d.removeAll()
		return CleanupRemoved, errors.Join(removeErr, d.unlock())
	default:
		d.logger.Warn("assembly did not complete, keeping frames",
			"dir", d.path,
			"frames", len(frames),
		)
		return CleanupRetained, d.unlock()
	}
}

// Detach drops the lock and leaves every frame in place.
func (d *Dir) Detach() error {
	if d.released {
		return ErrReleased
	}
	d.released = true
	return d.unlock()
}

// removeAll deletes every file in the directory except the lock.
func (d *Dir) removeAll() error {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name() == lockName || e.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(d.path, e.Name()))
	}
	return removeFiles(paths)
}

func removeFiles(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// unlock leaves the lock file in place; removing it would let two exports
// lock different inodes for the same directory.
func (d *Dir) unlock() error {
	return d.lock.Unlock()
}
