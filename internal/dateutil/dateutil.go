// Package dateutil formats dates with readable layouts such as "YYYY-MM-DD"
// or "MMMM D, YYYY". Pages call it through the date template function.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidLayout indicates a layout that is empty, too long, or has an
// unclosed bracket.
var ErrInvalidLayout = errors.New("invalid date layout")

// MaxLayoutLength bounds a layout string.
const MaxLayoutLength = 50

// DefaultLayout is used when a page asks for a date without a layout.
const DefaultLayout = "YYYY-MM-DD"

// tokens maps layout tokens to Go reference-time components, longest first
// so "MMMM" wins over "MM".
var tokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named layouts, matched case-insensitively.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// GoLayout converts a readable layout to a time.Format layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text inside brackets is kept
// literally ("[Updated] YYYY"); any other character is kept as is.
func GoLayout(layout string) (string, error) {
	switch {
	case layout == "":
		return "", fmt.Errorf("%w: layout cannot be empty", ErrInvalidLayout)
	case len(layout) > MaxLayoutLength:
		return "", fmt.Errorf("%w: layout exceeds %d characters", ErrInvalidLayout, MaxLayoutLength)
	}

	var b strings.Builder
	b.Grow(len(layout) + 8)

	for rest := layout; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidLayout, len(layout)-len(rest))
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		n := 1
		lit := rest[:1]
		for _, tok := range tokens {
			if strings.HasPrefix(rest, tok.token) {
				n, lit = len(tok.token), tok.goFmt
				break
			}
		}
		b.WriteString(lit)
		rest = rest[n:]
	}
	return b.String(), nil
}

// Format renders t with a layout or preset name. An empty layout uses
// DefaultLayout.
func Format(t time.Time, layout string) (string, error) {
	if layout == "" {
		layout = DefaultLayout
	}
	if preset, ok := Presets[strings.ToLower(layout)]; ok {
		layout = preset
	}

	goLayout, err := GoLayout(layout)
	if err != nil {
		return "", err
	}
	return t.Format(goLayout), nil
}
