package model

import "time"

// DocumentType distinguishes the two kinds of tracked documents.
type DocumentType string

const (
	TypePolicy DocumentType = "Policy"
	TypeSOP    DocumentType = "SOP"
)

// DocumentStatus is the manually managed review state of a document.
// It is independent from the computed overdue classification: a document
// whose next_review is in the past is overdue regardless of this field.
type DocumentStatus string

const (
	StatusDraft       DocumentStatus = "Draft"
	StatusCurrent     DocumentStatus = "Current"
	StatusUnderReview DocumentStatus = "Under Review"
	StatusOverdue     DocumentStatus = "Overdue"
)

// Document represents a tracked policy or SOP record.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Type           DocumentType   `json:"type"`
	DepartmentID   string         `json:"department_id"`
	DepartmentName string         `json:"department_name,omitempty"`
	LastReview     *time.Time     `json:"last_review"`
	NextReview     time.Time      `json:"next_review"`
	Status         DocumentStatus `json:"status"`
	Description    string         `json:"description,omitempty"`
	FileURL        string         `json:"file_url,omitempty"`
	FileName       string         `json:"file_name,omitempty"`
	FileSize       int64          `json:"file_size,omitempty"`
	CreatedBy      string         `json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// HasAttachment reports whether the document carries file metadata.
// file_url and file_name are written together, so checking the URL suffices.
func (d Document) HasAttachment() bool {
	return d.FileURL != ""
}

// DocumentDraft is the create input. The server assigns id, created_by and
// both timestamps; everything else comes from the caller.
type DocumentDraft struct {
	Name         string         `json:"name" validate:"required"`
	Type         DocumentType   `json:"type" validate:"required,oneof=Policy SOP"`
	DepartmentID string         `json:"department_id" validate:"required,uuid"`
	LastReview   *time.Time     `json:"last_review"`
	NextReview   time.Time      `json:"next_review" validate:"required"`
	Status       DocumentStatus `json:"status" validate:"required,oneof=Draft Current 'Under Review' Overdue"`
	Description  string         `json:"description"`
}

// DocumentUpdate is a partial update: nil fields are left untouched.
// File fields are filled in by the service after a successful re-upload,
// never directly by API callers.
type DocumentUpdate struct {
	Name         *string         `json:"name" validate:"omitempty,min=1"`
	Type         *DocumentType   `json:"type" validate:"omitempty,oneof=Policy SOP"`
	DepartmentID *string         `json:"department_id" validate:"omitempty,uuid"`
	LastReview   *time.Time      `json:"last_review"`
	NextReview   *time.Time      `json:"next_review"`
	Status       *DocumentStatus `json:"status" validate:"omitempty,oneof=Draft Current 'Under Review' Overdue"`
	Description  *string         `json:"description"`

	FileURL  *string `json:"-"`
	FileName *string `json:"-"`
	FileSize *int64  `json:"-"`
}

// Empty reports whether the update would change nothing.
func (u DocumentUpdate) Empty() bool {
	return u.Name == nil && u.Type == nil && u.DepartmentID == nil &&
		u.LastReview == nil && u.NextReview == nil && u.Status == nil &&
		u.Description == nil && u.FileURL == nil && u.FileName == nil && u.FileSize == nil
}
