package quickserve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"path/filepath"

	"github.com/alnah/go-quickserve/internal/assets"
	"github.com/alnah/go-quickserve/internal/config"
)

// Loader reads the inputs of a preview run. Style and template names are
// file names as listed in the run ("base.css", "index.html").
type Loader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
	LoadPartials() (map[string]string, error)
	LoadContent(relPath string) (string, error)
}

// Compile-time interface check.
var _ Loader = (*assets.FilesystemLoader)(nil)

// Site is the output of Build. Close removes it.
type Site struct {
	Dir    string // Scratch directory holding the rendered pages
	Bundle *Bundle
	Pages  []Page

	ws *Workspace
}

// Close removes the bundle file and the scratch directory.
// Safe to call more than once.
func (s *Site) Close() error {
	if s == nil || s.ws == nil {
		return nil
	}
	return s.ws.Close()
}

// Preview builds and serves a site from a project root.
// Create with New(), then call Run(), or Build() and Serve() separately.
type Preview struct {
	cfg    *config.Config
	logger *slog.Logger

	loader     *assets.FilesystemLoader
	bundler    *Bundler
	renderer   *Renderer
	scratchDir string

	// listen is replaced in tests to observe the bound address.
	listen func(network, address string) (net.Listener, error)
}

// New creates a Preview with the fixed default layout: five style sheets
// bundled into styles/_bundle.css, four pages rendered into _static, served
// on :8000 from the working directory. Options override any of these.
// Returns error if an option is invalid or the root is not a directory.
func New(opts ...Option) (*Preview, error) {
	p := &Preview{
		cfg:    config.DefaultConfig(),
		logger: discardLogger(),
		listen: net.Listen,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}

	root := p.cfg.Root
	if root == "" {
		root = "."
	}
	loader, err := assets.NewFilesystemLoader(root,
		assets.WithStylesDir(p.cfg.Styles.Dir),
		assets.WithTemplatesDir(p.cfg.Templates.Dir),
		assets.WithPartialsDir(p.cfg.Templates.PartialsDir),
	)
	if err != nil {
		return nil, err
	}

	p.loader = loader
	p.scratchDir = filepath.Join(loader.BasePath(), p.cfg.Output.ScratchDir)
	p.bundler = NewBundler(loader, BundleOptions{
		Dir:       loader.StylesPath(),
		Name:      p.cfg.Styles.Bundle,
		Files:     p.cfg.Styles.Files,
		Minify:    p.cfg.Styles.Minify,
		Highlight: p.cfg.Styles.Highlight,
	})
	p.renderer = NewRenderer(loader, RenderOptions{
		Pages: p.cfg.Templates.Pages,
		Vars:  p.cfg.Templates.Vars,
	})
	return p, nil
}

// Root returns the resolved project root.
func (p *Preview) Root() string {
	return p.loader.BasePath()
}

// Addr returns the configured listen address.
func (p *Preview) Addr() string {
	return p.cfg.Server.Addr()
}

// Build bundles the style sheets and renders every page into the scratch
// directory. On failure nothing it created is left on disk.
func (p *Preview) Build(ctx context.Context) (site *Site, err error) {
	ws := NewWorkspace()
	defer func() {
		if err != nil {
			if cerr := ws.Close(); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}
	}()

	bundle, err := p.bundler.Bundle(ctx)
	if err != nil {
		return nil, err
	}
	ws.TrackFile(bundle.Path)
	p.logger.Info("bundled styles", "path", bundle.Path, "sources", len(bundle.Sources), "bytes", len(bundle.CSS))

	if err := ws.MakeScratchDir(p.scratchDir); err != nil {
		return nil, err
	}

	pages, err := p.renderer.Render(ctx, bundle.CSS, p.scratchDir)
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		p.logger.Debug("rendered page", "template", page.Template, "path", page.Path)
	}
	p.logger.Info("rendered pages", "dir", p.scratchDir, "count", len(pages))

	return &Site{Dir: p.scratchDir, Bundle: bundle, Pages: pages, ws: ws}, nil
}

// Serve serves site until ctx is done. It does not remove the site.
func (p *Preview) Serve(ctx context.Context, site *Site) error {
	if site == nil {
		return errors.New("quickserve: nil site")
	}

	addr := p.Addr()
	ln, err := p.listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrListen, addr, err)
	}
	return serveListener(ctx, ln, NewHandler(site.Dir, p.logger), p.logger)
}

// Run builds the site, serves it until ctx is done, and removes it on every
// exit path.
func (p *Preview) Run(ctx context.Context) (err error) {
	site, err := p.Build(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := site.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		p.logger.Debug("removed temporary files", "bundle", site.Bundle.Path, "dir", site.Dir)
	}()

	return p.Serve(ctx, site)
}
