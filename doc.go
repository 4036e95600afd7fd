// Package quickserve previews a small static site: it bundles the site's
// style sheets, renders its page templates with the bundle inlined, and
// serves the result over HTTP until stopped. Every temporary file is removed
// when the run ends.
//
// # Quick Start
//
// Run the fixed layout from the working directory until interrupted:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	p, err := quickserve.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Run Phases
//
//  1. Bundle: styles/base.css, blog.css, cv.css, navbar.css and
//     portfolio.css are joined in that order, minified, and written to
//     styles/_bundle.css.
//  2. Render: templates/index.html, blog.html, portfolio.html and cv.html are
//     executed with the bundle as {{css}} and written to _static/index,
//     _static/blog, _static/portfolio and _static/cv.
//  3. Serve: _static is served on :8000. Files without an extension are sent
//     as text/html, so /blog returns the rendered blog page.
//  4. Clean up: the bundle file and _static are removed.
//
// Build and Serve expose the phases separately:
//
//	site, err := p.Build(ctx)
//	if err != nil {
//	    return err
//	}
//	defer site.Close()
//	return p.Serve(ctx, site)
//
// # Configuration
//
// Use functional options to change the layout:
//
//	p, err := quickserve.New(
//	    quickserve.WithRoot("/path/to/site"),
//	    quickserve.WithStyles("reset.css", "main.css"),
//	    quickserve.WithTemplates("index.html", "about.html"),
//	    quickserve.WithVars(map[string]string{"title": "Draft"}),
//	    quickserve.WithAddr("127.0.0.1:8080"),
//	)
//
// # Templates
//
// Pages use html/template syntax. The bundle is available both as the css
// function and as the "css" data field, so {{css}}, {{ css }} and {{.css}}
// are equivalent; WithVars entries are further data fields.
//
// The bundle is emitted verbatim only in a CSS context, such as inside a
// <style> element or a style attribute. Anywhere else html/template escapes
// it like any other string: <p>{{css}}</p> writes "nav&gt;ul" for
// "nav>ul".
//
// Files in
// templates/partials/*.html are parsed into every page, so a page can call
// {{template "navbar.html" .}}. Two functions render Markdown:
//
//	{{markdown "**bold**"}}
//	{{markdownFile "content/post.md"}}
//
// # Error Handling
//
// The package exports sentinel errors for use with errors.Is:
//
//	if errors.Is(err, quickserve.ErrStyleNotFound) {
//	    // a listed style sheet is missing
//	}
//
// Available sentinel errors:
//   - ErrNoStyles, ErrNoTemplates: empty input lists
//   - ErrStyleNotFound, ErrTemplateNotFound, ErrContentNotFound: missing inputs
//   - ErrTemplateParse, ErrTemplateRender: template failures
//   - ErrCSSMinify: the minifier rejected the bundle
//   - ErrInvalidPageName: a template name yields no usable page name
//   - ErrScratchExists: the output directory survived an earlier run
//   - ErrListen: the address could not be bound
//   - ErrInvalidConfig, ErrInvalidRoot: bad options
package quickserve
