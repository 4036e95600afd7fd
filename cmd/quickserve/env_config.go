package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-quickserve/internal/config"
)

// envPrefix marks the variables this command reads.
const envPrefix = "QUICKSERVE_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // QUICKSERVE_CONFIG: config file name or path
	Root       string // QUICKSERVE_ROOT: project root
	Host       string // QUICKSERVE_HOST: listen host
	Port       int    // QUICKSERVE_PORT: listen port
	NoMinify   bool   // QUICKSERVE_NO_MINIFY: skip minification

	hostSet bool
	portSet bool
}

// knownEnvVars lists valid QUICKSERVE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"QUICKSERVE_CONFIG":    true,
	"QUICKSERVE_ROOT":      true,
	"QUICKSERVE_HOST":      true,
	"QUICKSERVE_PORT":      true,
	"QUICKSERVE_NO_MINIFY": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and booleans return ErrEnvValue.
func loadEnvConfig() (*envConfig, error) {
	cfg := &envConfig{
		ConfigPath: os.Getenv("QUICKSERVE_CONFIG"),
		Root:       os.Getenv("QUICKSERVE_ROOT"),
	}

	cfg.Host, cfg.hostSet = os.LookupEnv("QUICKSERVE_HOST")

	if port := os.Getenv("QUICKSERVE_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("%w: QUICKSERVE_PORT=%q is not a number", ErrEnvValue, port)
		}
		cfg.Port, cfg.portSet = p, true
	}

	if noMinify := os.Getenv("QUICKSERVE_NO_MINIFY"); noMinify != "" {
		b, err := strconv.ParseBool(noMinify)
		if err != nil {
			return nil, fmt.Errorf("%w: QUICKSERVE_NO_MINIFY=%q is not a boolean", ErrEnvValue, noMinify)
		}
		cfg.NoMinify = b
	}

	return cfg, nil
}

// warnUnknownEnvVars logs warnings for unrecognized QUICKSERVE_* variables.
// Helps catch typos like QUICKSERVE_PROT instead of QUICKSERVE_PORT.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; flags are applied later via
// mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Root != "" {
		cfg.Root = env.Root
	}
	if env.hostSet {
		cfg.Server.Host = env.Host
	}
	if env.portSet {
		cfg.Server.Port = env.Port
	}
	if env.NoMinify {
		cfg.Styles.Minify = false
	}
}
