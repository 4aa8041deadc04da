// Package workspace manages the temporary files backing one segmentation
// invocation: staged in-memory inputs, the output the toolbox writes to,
// and any intermediate artifacts the toolbox drops into its working
// directory. Every invocation gets its own directory, so concurrent
// invocations never share cleanup state.
package workspace

import (
	"os"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/geoscope/otbsegm/raster"
)

// ErrInvalidInputKind is wrapped around staging failures where the value
// is neither a path string nor an in-memory raster.
var ErrInvalidInputKind = errors.New("image must be a file path or an in-memory raster")

// writeRaster stages an in-memory raster to disk; reconfigurable for testing.
var writeRaster = raster.WriteGeoTIFF

// Workspace is the scoped temporary directory owned by one invocation.
// Close removes the directory and everything staged into it; paths the
// caller supplied are returned unchanged by Stage and never deleted.
type Workspace struct {
	dir    string
	logger golog.Logger
}

// New creates a fresh workspace directory.
func New(logger golog.Logger) (*Workspace, error) {
	dir, err := os.MkdirTemp("", "otbsegm-")
	if err != nil {
		return nil, errors.Wrap(err, "creating workspace directory")
	}
	return &Workspace{dir: dir, logger: logger}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// TempFile allocates a new unique path inside the workspace with the
// given suffix. The file is created empty so the name is reserved.
func (w *Workspace) TempFile(suffix string) (string, error) {
	f, err := os.CreateTemp(w.dir, "otbsegm-*"+suffix)
	if err != nil {
		return "", errors.Wrap(err, "allocating temp file")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "closing temp file %q", f.Name())
	}
	return f.Name(), nil
}

// Stage resolves an image argument to an on-disk path. Path strings pass
// through unchanged and uncopied. In-memory rasters are written to a new
// temp file inside the workspace. Anything else fails with
// ErrInvalidInputKind before any file is touched.
func (w *Workspace) Stage(image interface{}) (string, error) {
	switch v := image.(type) {
	case string:
		return v, nil
	case *raster.Raster:
		path, err := w.TempFile(".tif")
		if err != nil {
			return "", err
		}
		if err := writeRaster(v, path); err != nil {
			return "", errors.Wrapf(err, "staging raster to %q", path)
		}
		w.logger.Debugw("staged in-memory raster", "path", path)
		return path, nil
	default:
		return "", errors.Wrapf(ErrInvalidInputKind, "got %T", image)
	}
}

// Snapshot returns the set of workspace files currently matching the
// glob pattern. Taken before an invocation so RemoveNewMatches can
// delete only artifacts that invocation created.
func (w *Workspace) Snapshot(pattern string) (map[string]bool, error) {
	matches, err := filepath.Glob(filepath.Join(w.dir, pattern))
	if err != nil {
		return nil, errors.Wrapf(err, "bad artifact pattern %q", pattern)
	}
	set := make(map[string]bool, len(matches))
	for _, m := range matches {
		set[m] = true
	}
	return set, nil
}

// RemoveNewMatches deletes workspace files matching the pattern that are
// absent from the before snapshot. Best effort: a failed deletion is
// logged and not escalated, and files present before the snapshot are
// never removed.
func (w *Workspace) RemoveNewMatches(pattern string, before map[string]bool) {
	matches, err := filepath.Glob(filepath.Join(w.dir, pattern))
	if err != nil {
		w.logger.Warnw("skipping artifact cleanup", "pattern", pattern, "error", err)
		return
	}
	for _, m := range matches {
		if before[m] {
			continue
		}
		if err := os.Remove(m); err != nil {
			w.logger.Warnw("could not remove stray artifact", "path", m, "error", err)
		}
	}
}

// Close removes the workspace directory and every file staged into it.
func (w *Workspace) Close() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return errors.Wrapf(err, "removing workspace %q", w.dir)
	}
	return nil
}
