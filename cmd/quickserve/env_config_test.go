package main

// Notes:
// - loadEnvConfig: we test every QUICKSERVE_* variable, including invalid
//   numbers and booleans which are reported rather than ignored.
// - warnUnknownEnvVars: we test typo detection and that known vars don't warn.
// - applyEnvConfig: we test that set variables override the config file.
// - Tests use t.Setenv() which prevents t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/alnah/go-quickserve/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("QUICKSERVE_CONFIG", "/path/to/quickserve.yaml")
		t.Setenv("QUICKSERVE_ROOT", "/site")
		t.Setenv("QUICKSERVE_HOST", "127.0.0.1")
		t.Setenv("QUICKSERVE_PORT", "9000")
		t.Setenv("QUICKSERVE_NO_MINIFY", "true")

		cfg, err := loadEnvConfig()
		if err != nil {
			t.Fatalf("loadEnvConfig() error = %v", err)
		}
		if cfg.ConfigPath != "/path/to/quickserve.yaml" {
			t.Errorf("ConfigPath = %q", cfg.ConfigPath)
		}
		if cfg.Root != "/site" {
			t.Errorf("Root = %q, want /site", cfg.Root)
		}
		if cfg.Host != "127.0.0.1" || !cfg.hostSet {
			t.Errorf("Host = %q (set %v), want 127.0.0.1", cfg.Host, cfg.hostSet)
		}
		if cfg.Port != 9000 || !cfg.portSet {
			t.Errorf("Port = %d (set %v), want 9000", cfg.Port, cfg.portSet)
		}
		if !cfg.NoMinify {
			t.Error("NoMinify = false, want true")
		}
	})

	t.Run("unset variables", func(t *testing.T) {
		cfg, err := loadEnvConfig()
		if err != nil {
			t.Fatalf("loadEnvConfig() error = %v", err)
		}
		if cfg.hostSet || cfg.portSet || cfg.NoMinify {
			t.Errorf("cfg = %+v, want nothing set", cfg)
		}
	})

	t.Run("empty host means all interfaces", func(t *testing.T) {
		t.Setenv("QUICKSERVE_HOST", "")

		cfg, err := loadEnvConfig()
		if err != nil {
			t.Fatalf("loadEnvConfig() error = %v", err)
		}
		if !cfg.hostSet || cfg.Host != "" {
			t.Errorf("Host = %q (set %v), want empty and set", cfg.Host, cfg.hostSet)
		}
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("QUICKSERVE_PORT", "eighty")

		if _, err := loadEnvConfig(); !errors.Is(err, ErrEnvValue) {
			t.Errorf("loadEnvConfig() error = %v, want ErrEnvValue", err)
		}
	})

	t.Run("invalid boolean", func(t *testing.T) {
		t.Setenv("QUICKSERVE_NO_MINIFY", "sometimes")

		if _, err := loadEnvConfig(); !errors.Is(err, ErrEnvValue) {
			t.Errorf("loadEnvConfig() error = %v, want ErrEnvValue", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("QUICKSERVE_PROT", "9000")
	t.Setenv("QUICKSERVE_PORT", "9000")

	var buf bytes.Buffer
	warnUnknownEnvVars(slog.New(slog.NewTextHandler(&buf, nil)))
	out := buf.String()

	if !strings.Contains(out, "QUICKSERVE_PROT") {
		t.Errorf("expected warning for QUICKSERVE_PROT, got %q", out)
	}
	if strings.Contains(out, "name=QUICKSERVE_PORT") {
		t.Errorf("known variable should not warn, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Priority over the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("set values override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Root = "/from/file"
		cfg.Server.Host = "0.0.0.0"

		applyEnvConfig(&envConfig{Root: "/from/env", Host: "", hostSet: true, Port: 0, portSet: true, NoMinify: true}, cfg)

		if cfg.Root != "/from/env" {
			t.Errorf("Root = %q, want /from/env", cfg.Root)
		}
		if cfg.Server.Host != "" {
			t.Errorf("Host = %q, want empty", cfg.Server.Host)
		}
		if cfg.Server.Port != 0 {
			t.Errorf("Port = %d, want 0", cfg.Server.Port)
		}
		if cfg.Styles.Minify {
			t.Error("Minify = true, want false")
		}
	})

	t.Run("unset values keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Root = "/from/file"

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Root != "/from/file" {
			t.Errorf("Root = %q, want /from/file", cfg.Root)
		}
		if cfg.Server.Port != config.DefaultPort {
			t.Errorf("Port = %d, want %d", cfg.Server.Port, config.DefaultPort)
		}
		if !cfg.Styles.Minify {
			t.Error("Minify = false, want true")
		}
	})
}
