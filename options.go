package quickserve

import (
	"log/slog"
	"maps"
	"net"
	"strconv"
)

// Option configures a Preview.
type Option func(*Preview)

// WithRoot sets the project root (default: working directory).
func WithRoot(dir string) Option {
	return func(p *Preview) {
		p.cfg.Root = dir
	}
}

// WithStylesDir sets the style sheet directory, relative to the root.
func WithStylesDir(dir string) Option {
	return func(p *Preview) {
		p.cfg.Styles.Dir = dir
	}
}

// WithStyles sets the style sheets to bundle, in order.
func WithStyles(files ...string) Option {
	return func(p *Preview) {
		p.cfg.Styles.Files = append([]string(nil), files...)
	}
}

// WithBundleName sets the temp bundle file name inside the styles directory.
func WithBundleName(name string) Option {
	return func(p *Preview) {
		p.cfg.Styles.Bundle = name
	}
}

// WithMinify toggles CSS minification (default: on).
func WithMinify(enabled bool) Option {
	return func(p *Preview) {
		p.cfg.Styles.Minify = enabled
	}
}

// WithHighlight appends the named chroma style to the bundle so Markdown
// code blocks are coloured.
func WithHighlight(style string) Option {
	return func(p *Preview) {
		p.cfg.Styles.Highlight = style
	}
}

// WithTemplatesDir sets the template directory, relative to the root.
func WithTemplatesDir(dir string) Option {
	return func(p *Preview) {
		p.cfg.Templates.Dir = dir
	}
}

// WithTemplates sets the page templates to render, in order.
func WithTemplates(pages ...string) Option {
	return func(p *Preview) {
		p.cfg.Templates.Pages = append([]string(nil), pages...)
	}
}

// WithPartialsDir sets the shared partials directory, relative to the
// template directory.
func WithPartialsDir(dir string) Option {
	return func(p *Preview) {
		p.cfg.Templates.PartialsDir = dir
	}
}

// WithVars adds template variables. Later calls override earlier keys.
func WithVars(vars map[string]string) Option {
	return func(p *Preview) {
		if p.cfg.Templates.Vars == nil {
			p.cfg.Templates.Vars = make(map[string]string, len(vars))
		}
		maps.Copy(p.cfg.Templates.Vars, vars)
	}
}

// WithScratchDir sets the output directory, relative to the root.
func WithScratchDir(dir string) Option {
	return func(p *Preview) {
		p.cfg.Output.ScratchDir = dir
	}
}

// WithAddr sets the listen address in host:port form.
// Panics if addr is not host:port with a numeric port (programmer error).
func WithAddr(addr string) Option {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		panic("quickserve: WithAddr: " + err.Error())
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		panic("quickserve: WithAddr: port must be numeric: " + portStr)
	}
	return func(p *Preview) {
		p.cfg.Server.Host = host
		p.cfg.Server.Port = port
	}
}

// WithLogger sets the logger for progress and request lines.
// A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Preview) {
		if logger == nil {
			logger = discardLogger()
		}
		p.logger = logger
	}
}
