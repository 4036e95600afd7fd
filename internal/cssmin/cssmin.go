// Package cssmin wraps CSS minification to isolate the external dependency.
// This allows swapping the underlying minifier without modifying callers.
package cssmin

import (
	"errors"
	"fmt"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

const mediaType = "text/css"

// ErrMinify indicates the minifier rejected the stylesheet.
var ErrMinify = errors.New("cssmin: minification failed")

// Minifier minifies whole stylesheets. The zero value is not usable; use New.
type Minifier struct {
	m *minify.M
}

// New returns a Minifier configured for plain stylesheets.
func New() *Minifier {
	m := minify.New()
	m.Add(mediaType, &css.Minifier{})
	return &Minifier{m: m}
}

// String minifies src. Whitespace-only input minifies to "".
func (c *Minifier) String(src string) (string, error) {
	out, err := c.m.String(mediaType, src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMinify, err)
	}
	return out, nil
}
