package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/laguz/internal/docstore"
	"github.com/starford/laguz/internal/models"
)

// CreateChecklistRequest is the request body for creating a checklist.
type CreateChecklistRequest struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Category string `json:"category"`
}

// Validate implements request validation.
func (r CreateChecklistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Type, validation.In("", string(models.TypeSimple), string(models.TypeTask))),
	)
}

// UpdateChecklistRequest is the request body for a partial checklist update.
// Nil fields are left unchanged.
type UpdateChecklistRequest struct {
	Title    *string        `json:"title"`
	Category *string        `json:"category"`
	Items    *[]models.Item `json:"items"`
}

func (r UpdateChecklistRequest) patch() docstore.ChecklistUpdate {
	return docstore.ChecklistUpdate{Title: r.Title, Category: r.Category, Items: r.Items}
}

// ConvertChecklistRequest asks for a checklist type conversion.
type ConvertChecklistRequest struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Target   string `json:"targetType"`
}

// Validate implements request validation.
func (r ConvertChecklistRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Target, validation.Required,
			validation.In(string(models.TypeSimple), string(models.TypeTask))),
	)
}

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// Validate implements request validation.
func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
	)
}

// UpdateNoteRequest is the request body for a partial note update.
type UpdateNoteRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

func (r UpdateNoteRequest) patch() docstore.NoteUpdate {
	return docstore.NoteUpdate{Title: r.Title, Content: r.Content, Category: r.Category}
}

// CategoryRequest creates or deletes a category directory.
type CategoryRequest struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// Validate implements request validation.
func (r CategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required,
			validation.In(docstore.KindChecklists, docstore.KindNotes)),
		validation.Field(&r.Path, validation.Required),
	)
}

// RenameCategoryRequest moves a category subtree.
type RenameCategoryRequest struct {
	Kind    string `json:"kind"`
	OldPath string `json:"oldPath"`
	NewPath string `json:"newPath"`
}

// Validate implements request validation.
func (r RenameCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required,
			validation.In(docstore.KindChecklists, docstore.KindNotes)),
		validation.Field(&r.OldPath, validation.Required),
		validation.Field(&r.NewPath, validation.Required),
	)
}

// OrderRequest persists display order for a directory. Categories orders the
// subdirectories of Path; Items orders the documents directly inside Path.
// A nil slice leaves that half of the sidecar untouched.
type OrderRequest struct {
	Kind       string   `json:"kind"`
	Path       string   `json:"path"`
	Categories []string `json:"categories"`
	Items      []string `json:"items"`
}

// Validate implements request validation.
func (r OrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.Required,
			validation.In(docstore.KindChecklists, docstore.KindNotes)),
	)
}

// ShareRequest shares a document with users or publicly.
type ShareRequest struct {
	Type       string   `json:"type"`
	ID         string   `json:"id"`
	Category   string   `json:"category"`
	SharedWith []string `json:"sharedWith"`
	Public     bool     `json:"isPubliclyShared"`
}

// Validate implements request validation.
func (r ShareRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type, validation.Required,
			validation.In(models.ItemTypeChecklist, models.ItemTypeNote)),
		validation.Field(&r.ID, validation.Required),
	)
}
