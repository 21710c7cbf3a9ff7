package postgres

import (
	"context"
	"database/sql"

	"docboard/internal/model"
	"docboard/internal/repository"
)

// DepartmentPostgres is a PostgreSQL implementation of repository.DepartmentRepository.
type DepartmentPostgres struct {
	db *sql.DB
}

// NewDepartmentPostgres creates a new DepartmentPostgres repository.
func NewDepartmentPostgres(db *sql.DB) *DepartmentPostgres {
	return &DepartmentPostgres{db: db}
}

var _ repository.DepartmentRepository = (*DepartmentPostgres)(nil)

// List returns all departments ordered by name ascending.
func (r *DepartmentPostgres) List(ctx context.Context) ([]model.Department, error) {
	const q = `
		SELECT id, name, color, created_at
		FROM departments
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Department, 0)
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Color, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
