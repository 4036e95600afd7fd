package quickserve

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-quickserve/internal/cssmin"
	"github.com/alnah/go-quickserve/internal/fileutil"
	"github.com/alnah/go-quickserve/internal/markdown"
)

// Bundle is the concatenated style text of one run.
type Bundle struct {
	Path    string   // Temp file the bundle was written to
	CSS     string   // Bundled (and usually minified) text
	Sources []string // Style sheets, in bundle order
}

// BundleOptions configures a Bundler.
type BundleOptions struct {
	Dir       string   // Directory the bundle file is written into
	Name      string   // Bundle file name
	Files     []string // Style sheets in bundle order; later sheets override earlier ones
	Minify    bool
	Highlight string // Chroma style appended after the sheets (empty = none)
}

// Bundler concatenates style sheets into a single file.
type Bundler struct {
	loader   Loader
	opts     BundleOptions
	minifier *cssmin.Minifier
}

// NewBundler creates a Bundler reading sheets through loader.
func NewBundler(loader Loader, opts BundleOptions) *Bundler {
	opts.Files = append([]string(nil), opts.Files...)
	b := &Bundler{loader: loader, opts: opts}
	if opts.Minify {
		b.minifier = cssmin.New()
	}
	return b
}

// Bundle reads every sheet in order, joins them, minifies the result when
// enabled, and writes it to Dir/Name. A missing sheet aborts the bundle
// before anything is written.
func (b *Bundler) Bundle(ctx context.Context) (*Bundle, error) {
	if len(b.opts.Files) == 0 {
		return nil, ErrNoStyles
	}

	parts := make([]string, 0, len(b.opts.Files)+1)
	for _, name := range b.opts.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		css, err := b.loader.LoadStyle(name)
		if err != nil {
			return nil, fmt.Errorf("bundling %s: %w", name, err)
		}
		parts = append(parts, css)
	}

	if b.opts.Highlight != "" {
		css, err := markdown.HighlightCSS(b.opts.Highlight)
		if err != nil {
			return nil, fmt.Errorf("bundling highlight style: %w", err)
		}
		parts = append(parts, css)
	}

	out := strings.Join(parts, "\n")
	if b.minifier != nil {
		minified, err := b.minifier.String(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCSSMinify, err)
		}
		out = minified
	}

	path := filepath.Join(b.opts.Dir, b.opts.Name)
	if err := fileutil.WriteFileAtomic(path, out); err != nil {
		return nil, fmt.Errorf("writing bundle: %w", err)
	}

	return &Bundle{
		Path:    path,
		CSS:     out,
		Sources: append([]string(nil), b.opts.Files...),
	}, nil
}
