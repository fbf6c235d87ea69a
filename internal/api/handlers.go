package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	gopath "path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/laguz/internal/docstore"
	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/models"
)

const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	repo   *docstore.Repository
	idx    index.DocumentIndex
	admins map[string]bool
}

// NewHandler creates a new Handler. adminUsers may delete and unshare
// documents they do not own.
func NewHandler(repo *docstore.Repository, idx index.DocumentIndex, adminUsers []string) *Handler {
	admins := make(map[string]bool, len(adminUsers))
	for _, u := range adminUsers {
		admins[u] = true
	}
	return &Handler{repo: repo, idx: idx, admins: admins}
}

func (h *Handler) isAdmin(user string) bool { return h.admins[user] }

// docRef extracts category and id from the URL wildcard: the last path
// segment is the document id, everything before it the category path.
// Supports encoded slashes from OpenAPI clients (e.g. home%2Fgroceries).
func docRef(r *http.Request) (category, id string) {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	raw = strings.Trim(raw, "/")
	if raw == "" {
		return "", ""
	}
	dir := gopath.Dir(raw)
	if dir == "." {
		dir = ""
	}
	return dir, gopath.Base(raw)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if v, ok := dst.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return false
		}
	}
	return true
}

// ListChecklists handles GET /api/checklists. The result includes the
// caller's own checklists in display order followed by checklists shared
// with them.
func (h *Handler) ListChecklists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.repo.ListChecklists(r.Context(), currentUser(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, lists)
}

// CreateChecklist handles POST /api/checklists.
func (h *Handler) CreateChecklist(w http.ResponseWriter, r *http.Request) {
	var req CreateChecklistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.repo.CreateChecklist(r.Context(), currentUser(r), req.Title,
		models.ChecklistType(req.Type), req.Category)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

// GetChecklist handles GET /api/checklists/*. An owner query parameter
// different from the caller reads a document shared with them.
func (h *Handler) GetChecklist(w http.ResponseWriter, r *http.Request) {
	category, id := docRef(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	user := currentUser(r)
	owner := r.URL.Query().Get("owner")

	var (
		c   *models.Checklist
		err error
	)
	if owner != "" && owner != user {
		c, err = h.repo.GetSharedChecklist(r.Context(), user, owner, id)
	} else {
		c, err = h.repo.GetChecklist(r.Context(), user, category, id)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

// UpdateChecklist handles PUT /api/checklists/*. A title change renames the
// backing file; the response then carries the rename alongside the checklist.
func (h *Handler) UpdateChecklist(w http.ResponseWriter, r *http.Request) {
	category, id := docRef(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	var req UpdateChecklistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, renamed, err := h.repo.UpdateChecklist(r.Context(), currentUser(r), category, id, req.patch())
	if err != nil {
		writeErr(w, err)
		return
	}
	data := map[string]any{"checklist": c}
	if renamed != nil {
		data["renamed"] = renamed
	}
	writeData(w, http.StatusOK, data)
}

// DeleteChecklist handles DELETE /api/checklists/*. Admins may pass an
// owner query parameter to delete another user's document.
func (h *Handler) DeleteChecklist(w http.ResponseWriter, r *http.Request) {
	category, id := docRef(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	user := currentUser(r)
	owner := r.URL.Query().Get("owner")
	if err := h.repo.DeleteChecklist(r.Context(), user, owner, category, id, h.isAdmin(user)); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// ConvertChecklist handles POST /api/checklists/convert.
func (h *Handler) ConvertChecklist(w http.ResponseWriter, r *http.Request) {
	var req ConvertChecklistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := h.repo.ConvertChecklist(r.Context(), currentUser(r), req.Category, req.ID,
		models.ChecklistType(req.Target))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

// ListNotes handles GET /api/notes.
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.repo.ListNotes(r.Context(), currentUser(r))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, notes)
}

// CreateNote handles POST /api/notes.
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	n, err := h.repo.CreateNote(r.Context(), currentUser(r), req.Title, req.Content, req.Category)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, n)
}

// GetNote handles GET /api/notes/*.
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	category, id := docRef(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	user := currentUser(r)
	owner := r.URL.Query().Get("owner")

	var (
		n   *models.Note
		err error
	)
	if owner != "" && owner != user {
		n, err = h.repo.GetSharedNote(r.Context(), user, owner, id)
	} else {
		n, err = h.repo.GetNote(r.Context(), user, category, id)
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, n)
}

// UpdateNote handles PUT /api/notes/*.
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	category, id := docRef(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	var req UpdateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	n, renamed, err := h.repo.UpdateNote(r.Context(), currentUser(r), category, id, req.patch())
	if err != nil {
		writeErr(w, err)
		return
	}
	data := map[string]any{"note": n}
	if renamed != nil {
		data["renamed"] = renamed
	}
	writeData(w, http.StatusOK, data)
}

// DeleteNote handles DELETE /api/notes/*.
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	category, id := docRef(r)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	user := currentUser(r)
	owner := r.URL.Query().Get("owner")
	if err := h.repo.DeleteNote(r.Context(), user, owner, category, id, h.isAdmin(user)); err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}
