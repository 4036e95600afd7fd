package quickserve

import (
	"errors"

	"github.com/alnah/go-quickserve/internal/assets"
	"github.com/alnah/go-quickserve/internal/config"
)

// Sentinel errors for library operations.
var (
	ErrNoStyles        = errors.New("no style sheets to bundle")
	ErrNoTemplates     = errors.New("no page templates to render")
	ErrCSSMinify       = errors.New("CSS minification failed")
	ErrTemplateParse   = errors.New("template parsing failed")
	ErrTemplateRender  = errors.New("template rendering failed")
	ErrInvalidPageName = errors.New("invalid page name")
	ErrScratchExists   = errors.New("scratch directory already exists")
	ErrListen          = errors.New("failed to listen")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrContentNotFound  = assets.ErrContentNotFound
	ErrInvalidRoot      = assets.ErrInvalidBasePath

	// Option validation errors.
	ErrInvalidConfig = config.ErrInvalidConfig
)
