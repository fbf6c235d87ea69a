package api

import (
	"net/http"

	"github.com/starford/laguz/internal/docstore"
)

func kindParam(r *http.Request) string {
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = docstore.KindChecklists
	}
	return kind
}

// Categories handles GET /api/categories?kind=. Returns the flattened
// category tree in display order.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	kind := kindParam(r)
	if kind != docstore.KindChecklists && kind != docstore.KindNotes {
		writeError(w, http.StatusBadRequest, "unknown kind")
		return
	}
	cats, err := h.repo.Categories(r.Context(), kind, currentUser(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, cats)
}

// CreateCategory handles POST /api/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.repo.CreateCategory(r.Context(), req.Kind, currentUser(r), req.Path); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, nil)
}

// RenameCategory handles PUT /api/categories. Moves the directory and
// rewrites every document inside so sharing records stay consistent.
func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	var req RenameCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.repo.RenameCategory(r.Context(), req.Kind, currentUser(r), req.OldPath, req.NewPath); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// DeleteCategory handles DELETE /api/categories?kind=&path=. The category
// and everything beneath it is removed.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	kind := kindParam(r)
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}
	if err := h.repo.DeleteCategory(r.Context(), kind, currentUser(r), path); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// SetOrder handles PUT /api/order. Persists the display order sidecar for a
// directory: subcategory order, document order, or both.
func (h *Handler) SetOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user := currentUser(r)
	if req.Categories != nil {
		if err := h.repo.SetCategoryOrder(r.Context(), req.Kind, user, req.Path, req.Categories); err != nil {
			writeErr(w, err)
			return
		}
	}
	if req.Items != nil {
		if err := h.repo.SetItemOrder(r.Context(), req.Kind, user, req.Path, req.Items); err != nil {
			writeErr(w, err)
			return
		}
	}
	writeData(w, http.StatusOK, nil)
}
