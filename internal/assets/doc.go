// Package assets reads the preview inputs: style sheets, page templates,
// shared partials and Markdown content, all from a project directory.
//
// # Directory Structure
//
//	{root}/
//	├── styles/
//	│   ├── base.css
//	│   └── ...
//	├── templates/
//	│   ├── index.html
//	│   ├── ...
//	│   └── partials/
//	│       └── navbar.html
//	└── content/
//	    └── posts/hello.md
//
// The styles and templates directory names are configurable; partials live
// in a subdirectory of templates.
//
// # Security
//
// Style and template names are single path elements. Content paths may
// nest but must stay inside the project root. FilesystemLoader resolves
// symlinks and verifies every resolved path stays within its directory.
package assets
