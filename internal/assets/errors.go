package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates a listed style sheet does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrTemplateNotFound indicates a listed page template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrContentNotFound indicates a Markdown content file does not exist.
	ErrContentNotFound = errors.New("content file not found")

	// ErrInvalidAssetName indicates the asset name is empty, contains path
	// separators, or is a dot-only traversal element.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the project root is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
