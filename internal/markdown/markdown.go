// Package markdown renders Markdown fragments for page templates.
//
// Pages reference it through the markdown and markdownFile template
// functions; code blocks are highlighted with chroma CSS classes, and
// HighlightCSS produces the matching stylesheet.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

var (
	// ErrConversion indicates goldmark failed to render the input.
	ErrConversion = errors.New("markdown conversion failed")

	// ErrUnknownStyle indicates the chroma style name is not registered.
	ErrUnknownStyle = errors.New("unknown highlight style")
)

// Converter renders Markdown to HTML fragments.
type Converter struct {
	md goldmark.Markdown
}

// NewConverter creates a Converter with GFM extensions, footnotes, heading
// IDs and class-based syntax highlighting.
func NewConverter() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // styled by HighlightCSS, which the bundle may include
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // blog pages link to headings
		),
	)
	return &Converter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment.
// Raw HTML in the source is dropped (goldmark's safe default).
func (c *Converter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return buf.String(), nil
}

// HighlightCSS returns the stylesheet for the classes emitted in code blocks.
func HighlightCSS(styleName string) (string, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}

	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}
	return writeCSS(style)
}

func writeCSS(style *chroma.Style) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing highlight css: %w", err)
	}
	return buf.String(), nil
}
