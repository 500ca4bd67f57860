package handler

import (
	"io/fs"
	"net/http"
)

// PageHandler serves the embedded HTML pages. Access control has already
// been applied by the gate.
type PageHandler struct {
	pages fs.FS
}

func NewPageHandler(pages fs.FS) *PageHandler {
	return &PageHandler{pages: pages}
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.serve(w, "login.html")
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.serve(w, "index.html")
}

func (h *PageHandler) serve(w http.ResponseWriter, name string) {
	content, err := fs.ReadFile(h.pages, name)
	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
