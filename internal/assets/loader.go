package assets

// Loader defines the contract for reading preview inputs.
// Style and template names are file names including their extension
// ("base.css", "index.html"), as they appear in the run's ordered lists.
type Loader interface {
	// LoadStyle reads one style sheet.
	// Returns ErrStyleNotFound if the file doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate reads one page template.
	// Returns ErrTemplateNotFound if the file doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadPartials reads every shared partial, keyed by file name.
	// A missing partials directory yields an empty map.
	LoadPartials() (map[string]string, error)

	// LoadContent reads a content file by project-relative slash path.
	// Returns ErrContentNotFound if the file doesn't exist.
	LoadContent(relPath string) (string, error)
}
