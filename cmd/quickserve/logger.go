package main

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger on w: --verbose shows debug lines,
// --quiet keeps warnings and errors only.
func newLogger(w io.Writer, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
