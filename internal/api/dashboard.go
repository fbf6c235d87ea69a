package api

import (
	"net/http"
	"strconv"
)

const defaultRecentLimit = 10

// Recent handles GET /api/recent?kind=&limit=. Served from the sqlite
// index, ordered by last update.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := h.idx.Recent(currentUser(r), q.Get("kind"), limit)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeData(w, http.StatusOK, rows)
}

// Dashboard handles GET /api/dashboard: task status counts, total tracked
// time and the most recently touched documents, all index-backed.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	summary, err := h.idx.TaskSummary(user)
	if err != nil {
		writeErr(w, err)
		return
	}
	tracked, err := h.idx.TimeTotal(user)
	if err != nil {
		writeErr(w, err)
		return
	}
	recent, err := h.idx.Recent(user, "", defaultRecentLimit)
	if err != nil {
		writeErr(w, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"taskSummary":         summary,
		"totalTrackedSeconds": tracked,
		"recent":              recent,
	})
}
