package repository

import (
	"context"

	"docboard/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document row from the draft. The database assigns
	// id, created_at and updated_at; the stored row is returned.
	Create(ctx context.Context, draft model.DocumentDraft, createdBy string) (*model.Document, error)

	// FindByID returns a document by its ID, including the owning
	// department's name.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns all documents ordered by created_at descending (newest
	// first), each carrying the owning department's name.
	List(ctx context.Context) ([]model.Document, error)

	// Update applies the non-nil fields of the partial update and refreshes
	// updated_at. It returns sql.ErrNoRows when no row matched.
	Update(ctx context.Context, id string, update model.DocumentUpdate) error

	// AttachFile patches the attachment columns onto an existing row. The
	// three fields are always written together.
	AttachFile(ctx context.Context, id, fileURL, fileName string, fileSize int64) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// DepartmentRepository defines read access to departments. Departments are
// seeded at migration time and never mutated through this service.
type DepartmentRepository interface {
	// List returns all departments ordered by name ascending.
	List(ctx context.Context) ([]model.Department, error)
}
