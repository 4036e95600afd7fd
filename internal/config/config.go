package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-quickserve/internal/assets"
	"github.com/alnah/go-quickserve/internal/fileutil"
	"github.com/alnah/go-quickserve/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// ReservedVar is the template variable that always carries the bundled CSS.
const ReservedVar = "css"

// Defaults reproduce the fixed layout of the site this tool previews.
const (
	DefaultBundleName = "_bundle.css"
	DefaultScratchDir = "_static"
	DefaultPort       = 8000
	MaxHostLength     = 253 // DNS name limit
	MaxVarValueLength = 4096
)

// DefaultStyleFiles is the bundle order. Later sheets override earlier ones.
var DefaultStyleFiles = []string{"base.css", "blog.css", "cv.css", "navbar.css", "portfolio.css"}

// DefaultPages is the render order.
var DefaultPages = []string{"index.html", "blog.html", "portfolio.html", "cv.html"}

// Config holds all configuration for a preview run.
type Config struct {
	Root      string          `yaml:"root"` // Project root (empty = working directory)
	Styles    StylesConfig    `yaml:"styles"`
	Templates TemplatesConfig `yaml:"templates"`
	Output    OutputConfig    `yaml:"output"`
	Server    ServerConfig    `yaml:"server"`
}

// StylesConfig defines CSS bundling options.
type StylesConfig struct {
	Dir       string   `yaml:"dir"`       // Relative to root (default: "styles")
	Files     []string `yaml:"files"`     // Bundle order
	Bundle    string   `yaml:"bundle"`    // Temp bundle file name, written inside Dir
	Minify    bool     `yaml:"minify"`    // default: true
	Highlight string   `yaml:"highlight"` // chroma style appended to the bundle (empty = none)
}

// TemplatesConfig defines page rendering options.
type TemplatesConfig struct {
	Dir         string            `yaml:"dir"`         // Relative to root (default: "templates")
	PartialsDir string            `yaml:"partialsDir"` // Relative to Dir (default: "partials")
	Pages       []string          `yaml:"pages"`       // Render order
	Vars        map[string]string `yaml:"vars"`        // Extra template variables
}

// OutputConfig defines where rendered pages go.
type OutputConfig struct {
	ScratchDir string `yaml:"scratchDir"` // Relative to root (default: "_static")
}

// ServerConfig defines the preview listener.
type ServerConfig struct {
	Host string `yaml:"host"` // empty = all interfaces
	Port int    `yaml:"port"` // 0 = pick a free port
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DefaultConfig returns the fixed preview layout: five style sheets bundled
// and minified into styles/_bundle.css, four pages rendered into _static,
// served on port 8000 on all interfaces.
func DefaultConfig() *Config {
	return &Config{
		Styles: StylesConfig{
			Dir:    assets.DefaultStylesDir,
			Files:  append([]string(nil), DefaultStyleFiles...),
			Bundle: DefaultBundleName,
			Minify: true,
		},
		Templates: TemplatesConfig{
			Dir:         assets.DefaultTemplatesDir,
			PartialsDir: assets.DefaultPartialsDir,
			Pages:       append([]string(nil), DefaultPages...),
		},
		Output: OutputConfig{ScratchDir: DefaultScratchDir},
		Server: ServerConfig{Port: DefaultPort},
	}
}

// Validate checks names, lists and ranges. Called automatically by
// LoadConfig, and again by the CLI after flags and environment are merged.
func (c *Config) Validate() error {
	if len(c.Styles.Files) == 0 {
		return fmt.Errorf("%w: styles.files: at least one style sheet is required", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Styles.Files))
	for i, name := range c.Styles.Files {
		if err := assets.ValidateAssetName(name); err != nil {
			return fmt.Errorf("%w: styles.files[%d]: %v", ErrInvalidConfig, i, err)
		}
		if seen[name] {
			return fmt.Errorf("%w: styles.files[%d]: %q listed twice", ErrInvalidConfig, i, name)
		}
		seen[name] = true
	}
	if err := assets.ValidateAssetName(c.Styles.Bundle); err != nil {
		return fmt.Errorf("%w: styles.bundle: %v", ErrInvalidConfig, err)
	}
	if seen[c.Styles.Bundle] {
		// Writing the bundle would overwrite one of its own inputs.
		return fmt.Errorf("%w: styles.bundle: %q is also a source file", ErrInvalidConfig, c.Styles.Bundle)
	}

	if len(c.Templates.Pages) == 0 {
		return fmt.Errorf("%w: templates.pages: at least one page is required", ErrInvalidConfig)
	}
	for i, name := range c.Templates.Pages {
		if err := assets.ValidateAssetName(name); err != nil {
			return fmt.Errorf("%w: templates.pages[%d]: %v", ErrInvalidConfig, i, err)
		}
	}
	for key, value := range c.Templates.Vars {
		if key == ReservedVar {
			return fmt.Errorf("%w: templates.vars: %q is reserved for the bundled CSS", ErrInvalidConfig, key)
		}
		if key == "" {
			return fmt.Errorf("%w: templates.vars: empty variable name", ErrInvalidConfig)
		}
		if len(value) > MaxVarValueLength {
			return fmt.Errorf("%w: templates.vars.%s: %d chars, max %d", ErrInvalidConfig, key, len(value), MaxVarValueLength)
		}
	}

	for field, dir := range map[string]string{
		"styles.dir":            c.Styles.Dir,
		"templates.dir":         c.Templates.Dir,
		"templates.partialsDir": c.Templates.PartialsDir,
		"output.scratchDir":     c.Output.ScratchDir,
	} {
		if err := validateRelativeDir(dir); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, field, err)
		}
	}

	scratch := filepath.Clean(c.Output.ScratchDir)
	for field, dir := range map[string]string{"styles.dir": c.Styles.Dir, "templates.dir": c.Templates.Dir} {
		if overlaps(scratch, filepath.Clean(dir)) {
			return fmt.Errorf("%w: output.scratchDir: %q overlaps %s %q", ErrInvalidConfig, c.Output.ScratchDir, field, dir)
		}
	}

	if len(c.Server.Host) > MaxHostLength {
		return fmt.Errorf("%w: server.host: %d chars, max %d", ErrInvalidConfig, len(c.Server.Host), MaxHostLength)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port: must be between 0 and 65535, got %d", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

// validateRelativeDir rejects empty, absolute and escaping directory names.
// The scratch directory is deleted at the end of a run, so it must never
// resolve to the project root or above it.
func validateRelativeDir(dir string) error {
	if dir == "" {
		return errors.New("must not be empty")
	}
	if filepath.IsAbs(dir) {
		return fmt.Errorf("%q must be relative", dir)
	}
	clean := filepath.Clean(dir)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%q must stay inside the project root", dir)
	}
	return nil
}

// overlaps reports whether one cleaned relative dir equals or contains the other.
func overlaps(a, b string) bool {
	sep := string(filepath.Separator)
	return a == b || strings.HasPrefix(a, b+sep) || strings.HasPrefix(b, a+sep)
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory first, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-quickserve", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
