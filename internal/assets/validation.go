package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is a single path element.
// Dots are allowed (names carry their extension) but "." and ".." are not.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// validateContentPath checks a project-relative content path: slash
// separated, relative, and free of ".." elements. Containment is verified
// again after symlink resolution.
func validateContentPath(rel string) error {
	if rel == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidAssetName)
	}
	if strings.ContainsAny(rel, "\\\x00") || strings.HasPrefix(rel, "/") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, rel)
	}
	for _, elem := range strings.Split(rel, "/") {
		if elem == ".." {
			return fmt.Errorf("%w: %q", ErrPathTraversal, rel)
		}
	}
	return nil
}
