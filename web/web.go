// Package web embeds the single-page client served at the root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFiles embed.FS

// Static returns the embedded client assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Index returns the embedded index.html bytes for the SPA fallback.
func Index() []byte {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		panic(err)
	}
	return data
}
