package quickserve

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockLoader struct {
	styles      map[string]string
	templates   map[string]string
	partials    map[string]string
	content     map[string]string
	partialsErr error
	styleCalls  []string
}

func (m *mockLoader) LoadStyle(name string) (string, error) {
	m.styleCalls = append(m.styleCalls, name)
	css, ok := m.styles[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return css, nil
}

func (m *mockLoader) LoadTemplate(name string) (string, error) {
	src, ok := m.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	return src, nil
}

func (m *mockLoader) LoadPartials() (map[string]string, error) {
	if m.partialsErr != nil {
		return nil, m.partialsErr
	}
	return maps.Clone(m.partials), nil
}

func (m *mockLoader) LoadContent(relPath string) (string, error) {
	src, ok := m.content[relPath]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrContentNotFound, relPath)
	}
	return src, nil
}

var _ Loader = (*mockLoader)(nil)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// writeTree creates files (slash paths relative to root) with content.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
}

// defaultSite returns a project tree with every default style and page.
func defaultSite() map[string]string {
	return map[string]string{
		"styles/base.css":          "body {\n  color: red;\n}\n",
		"styles/blog.css":          ".blog { margin: 0; }\n",
		"styles/cv.css":            ".cv { margin: 0; }\n",
		"styles/navbar.css":        ".navbar { margin: 0; }\n",
		"styles/portfolio.css":     ".portfolio { margin: 0; }\n",
		"templates/index.html":     "<style>{{css}}</style><h1>index</h1>",
		"templates/blog.html":      "<style>{{ css }}</style><h1>blog</h1>",
		"templates/portfolio.html": "<style>{{.css}}</style><h1>portfolio</h1>",
		"templates/cv.html":        "<style>{{.css}}</style><h1>cv</h1>",
	}
}

// defaultBundle is defaultSite's styles after minification.
const defaultBundle = "body{color:red}.blog{margin:0}.cv{margin:0}.navbar{margin:0}.portfolio{margin:0}"

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("%s should not exist (err = %v)", path, err)
	}
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err != nil {
		t.Errorf("%s should exist: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
