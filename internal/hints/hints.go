// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"strings"

	"github.com/alnah/go-quickserve/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForPortInUse returns hints for a listen failure on addr.
func ForPortInUse(addr string) string {
	hints := []string{fmt.Sprintf("stop whatever is listening on %s or pass --port", addr)}
	if IsInContainer() {
		hints = append(hints, "publish the port from the container (docker run -p)")
	}
	return formatHints(hints)
}

// ForScratchExists returns hints for a leftover scratch directory.
func ForScratchExists(dir string) string {
	return format("a previous run did not clean up; remove " + dir + " and retry")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-quickserve/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-quickserve") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingInput returns hints when a listed style or template is absent.
// available is what the directory actually contains.
func ForMissingInput(available []string) string {
	if len(available) == 0 {
		return format("run from the site root or pass --root")
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
