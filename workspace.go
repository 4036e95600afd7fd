package quickserve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/alnah/go-quickserve/internal/fileutil"
)

// scratchDirPermissions is applied to the scratch directory.
const scratchDirPermissions = 0o755 // rwxr-xr-x

// Workspace owns the temporary artifacts of one run and removes them on Close.
// Artifacts are released in reverse registration order. Safe for concurrent use.
type Workspace struct {
	mu        sync.Mutex
	artifacts []artifact
}

type artifact struct {
	path string
	dir  bool
}

// NewWorkspace returns an empty Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// TrackFile registers a temporary file for removal.
func (w *Workspace) TrackFile(path string) {
	w.track(artifact{path: path})
}

// TrackDir registers a temporary directory tree for removal.
func (w *Workspace) TrackDir(path string) {
	w.track(artifact{path: path, dir: true})
}

func (w *Workspace) track(a artifact) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.artifacts = append(w.artifacts, a)
}

// MakeScratchDir creates path and registers it. An existing path is never
// reused: it returns ErrScratchExists and is not registered, so Close
// leaves it alone.
func (w *Workspace) MakeScratchDir(path string) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrScratchExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking scratch directory: %w", err)
	}

	if err := os.MkdirAll(path, scratchDirPermissions); err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	w.TrackDir(path)
	return nil
}

// Close removes every registered artifact, newest first. Artifacts that are
// already gone are skipped; all other failures are joined. A second Close
// is a no-op.
func (w *Workspace) Close() error {
	w.mu.Lock()
	artifacts := w.artifacts
	w.artifacts = nil
	w.mu.Unlock()

	var errs []error
	for i := len(artifacts) - 1; i >= 0; i-- {
		a := artifacts[i]
		var err error
		if a.dir {
			err = fileutil.RemoveDir(a.path)
		} else {
			err = fileutil.RemoveFile(a.path)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("removing %s: %w", a.path, err))
		}
	}
	return errors.Join(errs...)
}
