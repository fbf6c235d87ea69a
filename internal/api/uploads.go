package api

import (
	"fmt"
	"io"
	"net/http"
	gopath "path"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/laguz/internal/storage"
)

const maxUploadBytes = 50 << 20 // 50 MB

// UploadHandler accepts and serves user file uploads. Files live in the
// per-user staging directories notes/{user}/images and notes/{user}/files,
// which the category walk and the index both skip.
type UploadHandler struct {
	store storage.Provider
}

// NewUploadHandler creates a handler writing through the given provider.
func NewUploadHandler(store storage.Provider) *UploadHandler {
	return &UploadHandler{store: store}
}

// stagingDir maps a requested kind to a staging directory name. Anything
// that is not an image goes to "files".
func stagingDir(kind string) string {
	if kind == "images" {
		return "images"
	}
	return "files"
}

// safeName validates that the filename is a plain name (no path separators,
// no traversal).
func safeName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("filename is required")
	}
	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || strings.Contains(cleaned, "..") {
		return "", fmt.Errorf("invalid filename: %s", name)
	}
	return cleaned, nil
}

// Upload handles POST /api/uploads (multipart/form-data, field "file").
// The optional kind query parameter selects images or files staging.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid multipart")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing 'file' field in multipart form")
		return
	}
	defer file.Close()

	name, err := safeName(header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read upload")
		return
	}

	user := currentUser(r)
	dir := stagingDir(r.URL.Query().Get("kind"))
	rel := gopath.Join("notes", user, dir, name)
	if err := h.store.Write(rel, data); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to write file")
		return
	}

	writeData(w, http.StatusCreated, map[string]any{
		"filename": name,
		"size":     int64(len(data)),
		"url":      "/api/uploads/" + dir + "/" + name,
	})
}

// ServeFile handles GET /api/uploads/{dir}/{filename} for the caller's own
// staging directories.
func (h *UploadHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	dir := stagingDir(chi.URLParam(r, "dir"))
	name, err := safeName(chi.URLParam(r, "filename"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rel := gopath.Join("notes", currentUser(r), dir, name)
	if !h.store.Exists(rel) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	http.ServeFile(w, r, filepath.Join(h.store.Root(), filepath.FromSlash(rel)))
}
