package quickserve

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-quickserve/internal/config"
	"github.com/alnah/go-quickserve/internal/dateutil"
	"github.com/alnah/go-quickserve/internal/fileutil"
	"github.com/alnah/go-quickserve/internal/markdown"
)

// pageExt is stripped from template names to produce page names.
const pageExt = ".html"

// Page is one rendered template.
type Page struct {
	Template string // Source template file name
	Name     string // Output file name, also the URL path
	Path     string // Output file path
}

// RenderOptions configures a Renderer.
type RenderOptions struct {
	Pages []string          // Templates in render order
	Vars  map[string]string // Extra template data; "css" is reserved
	Now   func() time.Time  // Clock for the date function (nil = time.Now)
}

// Renderer executes page templates with the bundled CSS.
type Renderer struct {
	loader Loader
	opts   RenderOptions
	md     *markdown.Converter
}

// NewRenderer creates a Renderer reading templates through loader.
func NewRenderer(loader Loader, opts RenderOptions) *Renderer {
	opts.Pages = append([]string(nil), opts.Pages...)
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Renderer{loader: loader, opts: opts, md: markdown.NewConverter()}
}

// PageName returns the output name for a template: the file name with one
// trailing ".html" removed. Names without the extension are kept as is.
//
// Examples:
//   - "index.html" -> "index"
//   - "a.html.html" -> "a.html"
//   - "notes.txt" -> "notes.txt"
func PageName(templateName string) (string, error) {
	if strings.ContainsAny(templateName, "/\\") {
		return "", fmt.Errorf("%w: %q contains a path separator", ErrInvalidPageName, templateName)
	}
	name := strings.TrimSuffix(templateName, pageExt)
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidPageName, templateName)
	}
	return name, nil
}

// Render executes every page in order and writes each to outDir/PageName.
// The first failure stops the run; pages already written stay on disk for
// the caller's workspace to remove.
func (r *Renderer) Render(ctx context.Context, css, outDir string) ([]Page, error) {
	if len(r.opts.Pages) == 0 {
		return nil, ErrNoTemplates
	}

	base, err := r.parsePartials(ctx, css)
	if err != nil {
		return nil, err
	}
	data := r.data(css)

	pages := make([]Page, 0, len(r.opts.Pages))
	for _, tmplName := range r.opts.Pages {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		page, err := r.renderPage(base, tmplName, data, outDir)
		if err != nil {
			return pages, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (r *Renderer) renderPage(base *template.Template, tmplName string, data map[string]any, outDir string) (Page, error) {
	name, err := PageName(tmplName)
	if err != nil {
		return Page{}, err
	}

	src, err := r.loader.LoadTemplate(tmplName)
	if err != nil {
		return Page{}, fmt.Errorf("rendering %s: %w", tmplName, err)
	}

	// Clone keeps the shared partials untouched by each page's definitions.
	tmpl, err := base.Clone()
	if err != nil {
		return Page{}, fmt.Errorf("%w: %s: %v", ErrTemplateParse, tmplName, err)
	}
	if _, err := tmpl.New(tmplName).Parse(src); err != nil {
		return Page{}, fmt.Errorf("%w: %s: %v", ErrTemplateParse, tmplName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return Page{}, fmt.Errorf("%w: %s: %w", ErrTemplateRender, tmplName, err)
	}

	path := filepath.Join(outDir, name)
	if err := fileutil.WriteFileAtomic(path, buf.String()); err != nil {
		return Page{}, fmt.Errorf("writing page: %w", err)
	}
	return Page{Template: tmplName, Name: name, Path: path}, nil
}

// parsePartials builds the template set every page is cloned from.
func (r *Renderer) parsePartials(ctx context.Context, css string) (*template.Template, error) {
	partials, err := r.loader.LoadPartials()
	if err != nil {
		return nil, fmt.Errorf("loading partials: %w", err)
	}

	names := make([]string, 0, len(partials))
	for name := range partials {
		names = append(names, name)
	}
	sort.Strings(names)

	base := template.New("").Funcs(r.funcs(ctx, css, r.opts.Now()))
	for _, name := range names {
		if _, err := base.New(name).Parse(partials[name]); err != nil {
			return nil, fmt.Errorf("%w: partial %s: %v", ErrTemplateParse, name, err)
		}
	}
	return base, nil
}

// funcs returns the template functions. Every page of a run shares one
// clock reading.
func (r *Renderer) funcs(ctx context.Context, css string, now time.Time) template.FuncMap {
	return template.FuncMap{
		// Pages written for other engines name the bundle as a bare {{css}}.
		config.ReservedVar: func() template.CSS {
			return template.CSS(css) // #nosec G203 -- bundle built from the project's own sheets
		},
		"date": func(layout ...string) (string, error) {
			if len(layout) > 1 {
				return "", fmt.Errorf("date: want at most one layout, got %d", len(layout))
			}
			return dateutil.Format(now, strings.Join(layout, ""))
		},
		"markdown": func(src string) (template.HTML, error) {
			html, err := r.md.ToHTML(ctx, src)
			if err != nil {
				return "", err
			}
			return template.HTML(html), nil // #nosec G203 -- goldmark output, raw HTML omitted
		},
		"markdownFile": func(relPath string) (template.HTML, error) {
			src, err := r.loader.LoadContent(relPath)
			if err != nil {
				return "", err
			}
			html, err := r.md.ToHTML(ctx, src)
			if err != nil {
				return "", err
			}
			return template.HTML(html), nil // #nosec G203 -- goldmark output, raw HTML omitted
		},
	}
}

func (r *Renderer) data(css string) map[string]any {
	data := make(map[string]any, len(r.opts.Vars)+1)
	for k, v := range r.opts.Vars {
		data[k] = v
	}
	// The bundle is trusted: emitted verbatim inside <style>.
	data[config.ReservedVar] = template.CSS(css) // #nosec G203 -- bundle built from the project's own sheets
	return data
}
