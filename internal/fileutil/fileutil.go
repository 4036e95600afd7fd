// Package fileutil provides the small file operations the preview run is
// built from: existence checks, atomic artifact writes, and removal that
// treats "already gone" as success.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// ArtifactPermissions is applied to every file the run writes.
const ArtifactPermissions = 0o644 // rw-r--r--

// ErrNotRegularFile indicates a removal target exists but is a directory.
var ErrNotRegularFile = errors.New("not a regular file")

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// WriteFileAtomic replaces path with content in one rename, so a reader
// (the preview server, an editor watching the bundle) never observes a
// half-written file.
func WriteFileAtomic(path, content string) error {
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	// atomic.WriteFile creates new files 0600.
	if err := os.Chmod(path, ArtifactPermissions); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

// RemoveFile deletes a regular file. A missing file is not an error.
func RemoveFile(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// RemoveDir deletes a directory tree. A missing directory is not an error.
func RemoveDir(path string) error {
	// os.RemoveAll already returns nil for a missing path.
	return os.RemoveAll(path)
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "quickserve" -> false (name)
//   - "./quickserve.yaml" -> true (relative path)
//   - "/etc/quickserve.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
