// Package web embeds the LocalSites Pro marketing site.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Site returns the embedded site rooted at its index.html.
func Site() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
