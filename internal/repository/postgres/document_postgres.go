package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"docboard/internal/model"
	"docboard/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const docColumns = `d.id, d.name, d.type, d.department_id, COALESCE(dep.name, ''),
	       d.last_review, d.next_review, d.status,
	       COALESCE(d.description, ''), COALESCE(d.file_url, ''), COALESCE(d.file_name, ''), COALESCE(d.file_size, 0),
	       d.created_by, d.created_at, d.updated_at`

func scanDocument(s interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	var lastReview sql.NullTime
	if err := s.Scan(
		&d.ID,
		&d.Name,
		&d.Type,
		&d.DepartmentID,
		&d.DepartmentName,
		&lastReview,
		&d.NextReview,
		&d.Status,
		&d.Description,
		&d.FileURL,
		&d.FileName,
		&d.FileSize,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lastReview.Valid {
		t := lastReview.Time
		d.LastReview = &t
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record with
// database-assigned id and timestamps. The department name is resolved in
// the same statement so the caller sees the expanded row immediately.
func (r *DocumentPostgres) Create(ctx context.Context, draft model.DocumentDraft, createdBy string) (*model.Document, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO documents (name, type, department_id, last_review, next_review, status, description, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)
			RETURNING *
		)
		SELECT ` + docColumns + `
		FROM inserted d
		LEFT JOIN departments dep ON dep.id = d.department_id
	`
	row := r.db.QueryRowContext(ctx, q,
		draft.Name,
		draft.Type,
		draft.DepartmentID,
		nullableTime(draft.LastReview),
		draft.NextReview.UTC(),
		draft.Status,
		draft.Description,
		createdBy,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + docColumns + `
		FROM documents d
		LEFT JOIN departments dep ON dep.id = d.department_id
		WHERE d.id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// List returns all documents newest-first with the department name expanded.
func (r *DocumentPostgres) List(ctx context.Context) ([]model.Document, error) {
	const q = `
		SELECT ` + docColumns + `
		FROM documents d
		LEFT JOIN departments dep ON dep.id = d.department_id
		ORDER BY d.created_at DESC, d.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies the provided fields only. updated_at is always refreshed,
// matching the write path for every partial update. Returns sql.ErrNoRows
// when the id does not exist.
func (r *DocumentPostgres) Update(ctx context.Context, id string, update model.DocumentUpdate) error {
	sets := []string{"updated_at = now()"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if update.Name != nil {
		sets = append(sets, "name = "+arg(*update.Name))
	}
	if update.Type != nil {
		sets = append(sets, "type = "+arg(*update.Type))
	}
	if update.DepartmentID != nil {
		sets = append(sets, "department_id = "+arg(*update.DepartmentID))
	}
	if update.LastReview != nil {
		sets = append(sets, "last_review = "+arg(update.LastReview.UTC()))
	}
	if update.NextReview != nil {
		sets = append(sets, "next_review = "+arg(update.NextReview.UTC()))
	}
	if update.Status != nil {
		sets = append(sets, "status = "+arg(*update.Status))
	}
	if update.Description != nil {
		sets = append(sets, "description = NULLIF("+arg(*update.Description)+", '')")
	}
	if update.FileURL != nil {
		sets = append(sets, "file_url = "+arg(*update.FileURL))
	}
	if update.FileName != nil {
		sets = append(sets, "file_name = "+arg(*update.FileName))
	}
	if update.FileSize != nil {
		sets = append(sets, "file_size = "+arg(*update.FileSize))
	}

	q := fmt.Sprintf("UPDATE documents SET %s WHERE id = %s", strings.Join(sets, ", "), arg(id))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AttachFile writes the three attachment columns in one statement so the
// attachment metadata is never partially present.
func (r *DocumentPostgres) AttachFile(ctx context.Context, id, fileURL, fileName string, fileSize int64) error {
	const q = `
		UPDATE documents
		SET file_url = $1, file_name = $2, file_size = $3, updated_at = now()
		WHERE id = $4
	`
	res, err := r.db.ExecContext(ctx, q, fileURL, fileName, fileSize, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a document by ID. It does not return an error if the row
// does not exist, and it does not touch the uploaded blob.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
