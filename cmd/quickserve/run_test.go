package main

// Notes:
// - Serving runs bind 127.0.0.1:0; the helper cancels the context once the
//   last page exists, so run() goes through build, serve and cleanup.
// - Pages are read before cancelling because cleanup removes them.

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	quickserve "github.com/alnah/go-quickserve"
	"github.com/alnah/go-quickserve/internal/config"
)

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

func siteFiles() map[string]string {
	return map[string]string{
		"styles/base.css":          "body { color: red; }",
		"styles/blog.css":          ".blog { margin: 0; }",
		"styles/cv.css":            ".cv { margin: 0; }",
		"styles/navbar.css":        ".navbar { margin: 0; }",
		"styles/portfolio.css":     ".portfolio { margin: 0; }",
		"templates/index.html":     "<style>{{css}}</style>index",
		"templates/blog.html":      "<style>{{.css}}</style>blog",
		"templates/portfolio.html": "<style>{{.css}}</style>portfolio",
		"templates/cv.html":        "<style>{{.css}}</style>cv",
	}
}

func localFlags(root string) *serveFlags {
	return &serveFlags{
		site:   siteFlags{root: root},
		server: serverFlags{host: "127.0.0.1", port: 0, hostSet: true, portSet: true},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// runUntilBuilt runs until lastPage is rendered, then cancels. It returns
// run's error and the index page as it was while serving.
func runUntilBuilt(t *testing.T, flags *serveFlags, env *Environment, scratch, lastPage string) (string, error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- run(ctx, flags, env, discardLogger()) }()

	deadline := time.After(10 * time.Second)
	for {
		if _, err := os.Stat(filepath.Join(scratch, lastPage)); err == nil {
			break
		}
		select {
		case err := <-done:
			return "", err
		case <-deadline:
			t.Fatal("pages were not rendered in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	index, err := os.ReadFile(filepath.Join(scratch, "index"))
	if err != nil {
		t.Fatalf("reading index: %v", err)
	}
	cancel()

	select {
	case err := <-done:
		return string(index), err
	case <-time.After(10 * time.Second):
		t.Fatal("run() did not return after cancel")
		return "", nil
	}
}

func TestRun_ServesAndCleansUp(t *testing.T) {
	t.Parallel()

	root := setupTestDir(t, siteFiles())
	env, _, _ := testEnv()

	index, err := runUntilBuilt(t, localFlags(root), env, filepath.Join(root, "_static"), "cv")
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	const wantCSS = "body{color:red}.blog{margin:0}.cv{margin:0}.navbar{margin:0}.portfolio{margin:0}"
	if index != "<style>"+wantCSS+"</style>index" {
		t.Errorf("index = %q", index)
	}
	if _, err := os.Stat(filepath.Join(root, "_static")); !os.IsNotExist(err) {
		t.Error("_static should be removed after run")
	}
	if _, err := os.Stat(filepath.Join(root, "styles", "_bundle.css")); !os.IsNotExist(err) {
		t.Error("bundle should be removed after run")
	}
}

func TestRun_InterruptedBeforeServing(t *testing.T) {
	t.Parallel()

	root := setupTestDir(t, siteFiles())
	env, _, _ := testEnv()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, localFlags(root), env, discardLogger()); err != nil {
		t.Fatalf("run() error = %v, want nil", err)
	}
	if got := exitCodeFor(run(ctx, localFlags(root), env, discardLogger())); got != ExitSuccess {
		t.Errorf("exit code = %d, want %d", got, ExitSuccess)
	}
	for _, path := range []string{filepath.Join(root, "_static"), filepath.Join(root, "styles", "_bundle.css")} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s should not exist after an interrupted run", path)
		}
	}
}

func TestRun_PrintConfig(t *testing.T) {
	t.Parallel()

	root := setupTestDir(t, siteFiles())
	env, stdout, _ := testEnv()
	flags := localFlags(root)
	flags.site.noMinify = true
	flags.server.port = 9000
	flags.common.printConfig = true

	if err := run(context.Background(), flags, env, discardLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"minify: false", "host: 127.0.0.1", "port: 9000", "- index.html"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "_static")); !os.IsNotExist(err) {
		t.Error("--print-config should not build the site")
	}

	// The printed config loads back unchanged.
	path := filepath.Join(t.TempDir(), "effective.yaml")
	if err := os.WriteFile(path, stdout.Bytes(), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(printed) error = %v", err)
	}
	if cfg.Root != root || cfg.Styles.Minify || cfg.Server.Port != 9000 {
		t.Errorf("reloaded config = %+v", cfg)
	}
}

func TestRun_ConfigFile(t *testing.T) {
	t.Parallel()

	files := siteFiles()
	files["templates/home.html"] = "<title>{{.title}}</title><style>{{.css}}</style>"
	files["site.yaml"] = `
styles:
  files: [base.css]
  minify: false
templates:
  pages: [home.html]
  vars:
    title: Draft
output:
  scratchDir: preview
server:
  host: 127.0.0.1
  port: 0
`
	root := setupTestDir(t, files)
	env, _, _ := testEnv()

	flags := &serveFlags{site: siteFlags{root: root}, common: commonFlags{config: filepath.Join(root, "site.yaml")}}
	scratch := filepath.Join(root, "preview")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- run(ctx, flags, env, discardLogger()) }()

	deadline := time.After(10 * time.Second)
	var home []byte
	for {
		if data, err := os.ReadFile(filepath.Join(scratch, "home")); err == nil {
			home = data
			break
		}
		select {
		case err := <-done:
			t.Fatalf("run() returned early: %v", err)
		case <-deadline:
			t.Fatal("home page was not rendered in time")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if want := "<title>Draft</title><style>body { color: red; }</style>"; string(home) != want {
		t.Errorf("home = %q, want %q", home, want)
	}
	if _, err := os.Stat(scratch); !os.IsNotExist(err) {
		t.Error("scratch directory should be removed after run")
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(files map[string]string)
		wantErr  error
		wantHint string
		wantCode int
	}{
		{
			name:     "missing style lists available sheets",
			mutate:   func(files map[string]string) { delete(files, "styles/navbar.css") },
			wantErr:  quickserve.ErrStyleNotFound,
			wantHint: "available: base.css, blog.css, cv.css, portfolio.css",
			wantCode: ExitIO,
		},
		{
			name:     "missing template lists available pages",
			mutate:   func(files map[string]string) { delete(files, "templates/cv.html") },
			wantErr:  quickserve.ErrTemplateNotFound,
			wantHint: "available: blog.html, index.html, portfolio.html",
			wantCode: ExitIO,
		},
		{
			name:     "stale scratch directory",
			mutate:   func(files map[string]string) { files["_static/index"] = "old" },
			wantErr:  quickserve.ErrScratchExists,
			wantHint: "a previous run did not clean up",
			wantCode: ExitIO,
		},
		{
			name:     "template syntax error",
			mutate:   func(files map[string]string) { files["templates/blog.html"] = "{{.css" },
			wantErr:  quickserve.ErrTemplateParse,
			wantCode: ExitGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files := siteFiles()
			tt.mutate(files)
			root := setupTestDir(t, files)
			env, _, _ := testEnv()

			err := run(context.Background(), localFlags(root), env, discardLogger())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("run() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantHint != "" && !strings.Contains(err.Error(), "hint: "+tt.wantHint) {
				t.Errorf("error = %q, want hint %q", err, tt.wantHint)
			}
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Errorf("exitCodeFor() = %d, want %d", code, tt.wantCode)
			}
			if _, err := os.Stat(filepath.Join(root, "styles", "_bundle.css")); !os.IsNotExist(err) {
				t.Error("bundle should not survive a failed run")
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("no name copies base", func(t *testing.T) {
		t.Parallel()

		base := config.DefaultConfig()
		cfg, err := loadConfig("", "", base)
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg == base {
			t.Error("loadConfig() should return a copy")
		}
		cfg.Server.Port = 1
		if base.Server.Port != config.DefaultPort {
			t.Error("mutating the result changed the base config")
		}
	})

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{
			"flag.yaml": "server:\n  port: 9001\n",
			"env.yaml":  "server:\n  port: 9002\n",
		})
		cfg, err := loadConfig(filepath.Join(dir, "flag.yaml"), filepath.Join(dir, "env.yaml"), config.DefaultConfig())
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Server.Port != 9001 {
			t.Errorf("Port = %d, want 9001", cfg.Server.Port)
		}
	})

	t.Run("environment used without flag", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"env.yaml": "server:\n  port: 9002\n"})
		cfg, err := loadConfig("", filepath.Join(dir, "env.yaml"), config.DefaultConfig())
		if err != nil {
			t.Fatalf("loadConfig() error = %v", err)
		}
		if cfg.Server.Port != 9002 {
			t.Errorf("Port = %d, want 9002", cfg.Server.Port)
		}
	})

	t.Run("unknown name gets a hint", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig("no-such-quickserve-config", "", config.DefaultConfig())
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("loadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint: use --config") {
			t.Errorf("error = %q, want --config hint", err)
		}
	})
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Server.Host = "0.0.0.0"

	mergeFlags(&serveFlags{
		site:   siteFlags{root: "/site", noMinify: true},
		server: serverFlags{port: 9000, portSet: true},
	}, cfg)

	if cfg.Root != "/site" || cfg.Styles.Minify {
		t.Errorf("root/minify = %q/%v", cfg.Root, cfg.Styles.Minify)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, unset flag should keep config", cfg.Server.Host)
	}
}

func TestListFiles(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"b.css":       "",
		"a.css":       "",
		"_bundle.css": "",
		"notes.txt":   "",
		"sub/c.css":   "",
	})

	got := listFiles(dir, ".css", "_bundle.css")
	if strings.Join(got, ",") != "a.css,b.css" {
		t.Errorf("listFiles() = %v, want [a.css b.css]", got)
	}
	if listFiles(filepath.Join(dir, "missing"), ".css", "") != nil {
		t.Error("listFiles() on a missing dir should be nil")
	}
}
