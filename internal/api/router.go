package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/laguz/internal/docstore"
	"github.com/starford/laguz/internal/index"
	"github.com/starford/laguz/internal/storage"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(repo *docstore.Repository, idx index.DocumentIndex, store storage.Provider,
	authEnabled bool, token string, adminUsers []string, sseHandler http.Handler) chi.Router {

	h := NewHandler(repo, idx, adminUsers)
	uh := NewUploadHandler(store)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Checklists CRUD + type conversion.
	r.Get("/checklists", h.ListChecklists)
	r.Post("/checklists", h.CreateChecklist)
	r.Post("/checklists/convert", h.ConvertChecklist)
	r.Get("/checklists/*", h.GetChecklist)
	r.Put("/checklists/*", h.UpdateChecklist)
	r.Delete("/checklists/*", h.DeleteChecklist)

	// Notes CRUD.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/*", h.GetNote)
	r.Put("/notes/*", h.UpdateNote)
	r.Delete("/notes/*", h.DeleteNote)

	// Category tree and ordering.
	r.Get("/categories", h.Categories)
	r.Post("/categories", h.CreateCategory)
	r.Put("/categories", h.RenameCategory)
	r.Delete("/categories", h.DeleteCategory)
	r.Put("/order", h.SetOrder)

	// Sharing.
	r.Post("/share", h.Share)
	r.Delete("/share", h.Unshare)
	r.Get("/shared/with-me", h.SharedWithMe)
	r.Get("/shared/by-me", h.SharedByMe)

	// Index-backed views.
	r.Get("/recent", h.Recent)
	r.Get("/dashboard", h.Dashboard)

	// Uploads (auth-protected).
	r.Post("/uploads", uh.Upload)
	r.Get("/uploads/{dir}/{filename}", uh.ServeFile)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
