package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Default directory names under the project root.
const (
	DefaultStylesDir    = "styles"
	DefaultTemplatesDir = "templates"
	DefaultPartialsDir  = "partials"
)

// FilesystemLoader reads preview inputs from a project directory.
// Implements Loader interface.
type FilesystemLoader struct {
	basePath     string
	stylesDir    string
	templatesDir string
	partialsDir  string
}

// LoaderOption customizes a FilesystemLoader.
type LoaderOption func(*FilesystemLoader)

// WithStylesDir sets the styles directory, relative to the project root.
func WithStylesDir(dir string) LoaderOption {
	return func(f *FilesystemLoader) {
		if dir != "" {
			f.stylesDir = dir
		}
	}
}

// WithTemplatesDir sets the templates directory, relative to the project root.
func WithTemplatesDir(dir string) LoaderOption {
	return func(f *FilesystemLoader) {
		if dir != "" {
			f.templatesDir = dir
		}
	}
}

// WithPartialsDir sets the partials directory, relative to the templates directory.
func WithPartialsDir(dir string) LoaderOption {
	return func(f *FilesystemLoader) {
		if dir != "" {
			f.partialsDir = dir
		}
	}
}

// NewFilesystemLoader creates a FilesystemLoader rooted at basePath.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string, opts ...LoaderOption) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path for consistent containment checks.
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	f := &FilesystemLoader{
		basePath:     absPath,
		stylesDir:    DefaultStylesDir,
		templatesDir: DefaultTemplatesDir,
		partialsDir:  DefaultPartialsDir,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// BasePath returns the resolved absolute project root.
func (f *FilesystemLoader) BasePath() string {
	return f.basePath
}

// StylesPath returns the absolute styles directory.
func (f *FilesystemLoader) StylesPath() string {
	return filepath.Join(f.basePath, f.stylesDir)
}

// TemplatesPath returns the absolute templates directory.
func (f *FilesystemLoader) TemplatesPath() string {
	return filepath.Join(f.basePath, f.templatesDir)
}

// LoadStyle reads {basePath}/{stylesDir}/{name}.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	return f.readContained(filepath.Join(f.StylesPath(), name), name, ErrStyleNotFound)
}

// LoadTemplate reads {basePath}/{templatesDir}/{name}.
func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	return f.readContained(filepath.Join(f.TemplatesPath(), name), name, ErrTemplateNotFound)
}

// LoadPartials reads every *.html file in {templatesDir}/{partialsDir}.
func (f *FilesystemLoader) LoadPartials() (map[string]string, error) {
	dir := filepath.Join(f.TemplatesPath(), f.partialsDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: listing partials: %v", ErrAssetRead, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".html" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	partials := make(map[string]string, len(names))
	for _, name := range names {
		content, err := f.readContained(filepath.Join(dir, name), name, ErrTemplateNotFound)
		if err != nil {
			return nil, err
		}
		partials[name] = content
	}
	return partials, nil
}

// LoadContent reads {basePath}/{relPath}. relPath uses forward slashes.
func (f *FilesystemLoader) LoadContent(relPath string) (string, error) {
	if err := validateContentPath(relPath); err != nil {
		return "", err
	}
	return f.readContained(filepath.Join(f.basePath, filepath.FromSlash(relPath)), relPath, ErrContentNotFound)
}

// readContained reads filePath after verifying it resolves inside basePath.
func (f *FilesystemLoader) readContained(filePath, name string, notFound error) (string, error) {
	if err := f.verifyPathContainment(filePath); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", notFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Resolves symlinks to prevent escape via symlink pointing outside basePath.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// If the file doesn't exist yet EvalSymlinks fails; the read fails
	// afterwards anyway and the prefix check still applies.
	if realPath, err := filepath.EvalSymlinks(absFilePath); err == nil {
		absFilePath = realPath
	}

	// Separator suffix prevents /base/path vs /base/pathevil prefix matches.
	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

// Compile-time interface check.
var _ Loader = (*FilesystemLoader)(nil)
