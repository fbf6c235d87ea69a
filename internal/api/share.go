package api

import (
	"net/http"
)

// Share handles POST /api/share. The caller shares one of their own
// documents with specific users, publicly, or both.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if !decodeBody(w, r, &req) {
		return
	}
	item, err := h.repo.Share(r.Context(), req.Type, currentUser(r), req.Category, req.ID,
		req.SharedWith, req.Public)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, item)
}

// Unshare handles DELETE /api/share?type=&owner=&id=. The document itself
// is untouched; only the sharing record is removed.
func (h *Handler) Unshare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	itemType := q.Get("type")
	id := q.Get("id")
	if itemType == "" || id == "" {
		writeError(w, http.StatusBadRequest, "type and id are required")
		return
	}
	user := currentUser(r)
	owner := q.Get("owner")
	if owner == "" {
		owner = user
	}
	if err := h.repo.Unshare(r.Context(), itemType, user, owner, id, h.isAdmin(user)); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// SharedWithMe handles GET /api/shared/with-me.
func (h *Handler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.repo.SharedWithUser(r.Context(), currentUser(r)))
}

// SharedByMe handles GET /api/shared/by-me.
func (h *Handler) SharedByMe(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.repo.SharedByUser(r.Context(), currentUser(r)))
}
