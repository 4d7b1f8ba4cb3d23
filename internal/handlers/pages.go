package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Pages are the HTML documents served from the static directory.
var Pages = []string{
	"login.html",
	"home.html",
	"journal.html",
	"support-group.html",
	"connect.html",
	"profile.html",
}

// Page serves one named file from the static directory. A page missing from
// the directory is answered like any other unknown path.
func (h *Handler) Page(name string) http.HandlerFunc {
	path := filepath.Join(h.cfg.StaticDir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		if st, err := os.Stat(path); err != nil || st.IsDir() {
			h.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, path)
	}
}

// Static serves remaining assets from the static directory. Directory
// listings and missing files fall through to NotFound.
func (h *Handler) Static() http.HandlerFunc {
	root := http.Dir(h.cfg.StaticDir)
	fs := http.FileServer(root)
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := root.Open(r.URL.Path)
		if err != nil {
			h.NotFound(w, r)
			return
		}
		st, err := f.Stat()
		f.Close()
		if err != nil || st.IsDir() {
			h.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	}
}

// NotFound answers JSON for API paths and plain text otherwise.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/api" {
		writeMessage(w, http.StatusNotFound, "API endpoint not found")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Page not found"))
}
