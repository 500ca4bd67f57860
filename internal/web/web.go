// Package web embeds the browser UI and the API description.
package web

import (
	"embed"
	"io/fs"
)

//go:embed pages/*.html
var pagesFS embed.FS

//go:embed static
var staticFS embed.FS

//go:embed openapi.yaml
var OpenAPISpec []byte

// Pages holds login.html and index.html at its root.
func Pages() fs.FS {
	sub, err := fs.Sub(pagesFS, "pages")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static holds the scripts and styles served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
