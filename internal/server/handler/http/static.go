package http

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexPage = "index.html"

// StaticHandler serves the marketing site. GET requests for a missing
// file are redirected to the root page; other methods get a JSON 404.
type StaticHandler struct {
	FS fs.FS
}

// ServeHTTP implements http.Handler.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeFailure(w, http.StatusNotFound, "Not found")
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = indexPage
	}

	info, err := fs.Stat(h.FS, name)
	if err == nil && info.IsDir() {
		name = path.Join(name, indexPage)
		_, err = fs.Stat(h.FS, name)
	}
	if err != nil {
		if r.URL.Path == "/" {
			writeFailure(w, http.StatusNotFound, "Not found")
			return
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	http.ServeFileFS(w, r, h.FS, name)
}
