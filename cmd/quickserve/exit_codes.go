package main

import (
	"errors"
	"os"

	quickserve "github.com/alnah/go-quickserve"
	"github.com/alnah/go-quickserve/internal/assets"
	"github.com/alnah/go-quickserve/internal/config"
)

// Exit codes for the quickserve CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Served until interrupted
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, environment, or config
	ExitIO      = 3 // Missing input, stale scratch directory, permission denied
	ExitNetwork = 4 // Address could not be bound
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Network errors (exit 4)
	if errors.Is(err, quickserve.ErrListen) {
		return ExitNetwork
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrEnvValue) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, quickserve.ErrInvalidRoot) ||
		errors.Is(err, quickserve.ErrInvalidPageName) ||
		errors.Is(err, quickserve.ErrNoStyles) ||
		errors.Is(err, quickserve.ErrNoTemplates) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, quickserve.ErrStyleNotFound) ||
		errors.Is(err, quickserve.ErrTemplateNotFound) ||
		errors.Is(err, quickserve.ErrContentNotFound) ||
		errors.Is(err, quickserve.ErrScratchExists) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, assets.ErrPathTraversal) {
		return ExitIO
	}

	return ExitGeneral
}
