// Package assets provides the theme stylesheets and the page template used
// to wrap a converted fragment into a standalone HTML page.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes and templates (go:embed)
//	    ├── FilesystemLoader  - a user directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// A custom directory only needs the files it overrides:
//
//	{basePath}/
//	├── themes/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// # Security
//
// Asset names are validated so they cannot carry path components, and the
// FilesystemLoader resolves symlinks before checking that a file stays below
// its base path.
package assets
