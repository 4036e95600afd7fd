package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quickserve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bundle styles/*.css, render templates/*.html into _static, and serve")
	fmt.Fprintln(w, "the result on http://localhost:8000 until interrupted. Temporary files")
	fmt.Fprintln(w, "are removed on exit.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -r, --root <dir>          Project root (default: working directory)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --print-config        Print the effective config as YAML and exit")
	fmt.Fprintln(w, "      --no-minify           Bundle styles without minifying")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --host <s>            Listen host (default: all interfaces)")
	fmt.Fprintln(w, "  -p, --port <n>            Listen port (default: 8000)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  QUICKSERVE_CONFIG         Config file name or path")
	fmt.Fprintln(w, "  QUICKSERVE_ROOT           Project root")
	fmt.Fprintln(w, "  QUICKSERVE_HOST           Listen host")
	fmt.Fprintln(w, "  QUICKSERVE_PORT           Listen port")
	fmt.Fprintln(w, "  QUICKSERVE_NO_MINIFY      Set to 1 or true to skip minification")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > environment > config file > defaults.")
}
