package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"docboard/internal/model"
	"docboard/internal/repository"
	"docboard/internal/storage"
)

var (
	ErrIDRequired   = errors.New("id is required")
	ErrNotFound     = errors.New("document not found")
	ErrInvalid      = errors.New("invalid document input")
	ErrNoAttachment = errors.New("document has no attachment")

	// Operation failure kinds. Callers match these with errors.Is; the
	// wrapped cause carries the detail.
	ErrFetch  = errors.New("fetch failed")
	ErrCreate = errors.New("create failed")
	ErrUpdate = errors.New("update failed")
	ErrDelete = errors.New("delete failed")
	ErrUpload = errors.New("upload failed")
)

// FileUpload carries an attachment stream and its client-side metadata.
type FileUpload struct {
	Reader      io.Reader
	Name        string
	Size        int64
	ContentType string
}

// ListResult holds both halves of a snapshot fetch. Each half fails
// independently: a nil error means that slice is valid, and one half
// failing never discards the other.
type ListResult struct {
	Documents      []model.Document
	Departments    []model.Department
	DocumentsErr   error
	DepartmentsErr error
}

// DocumentService defines the use cases for handling tracked documents.
type DocumentService interface {
	// List fetches documents (newest first) and departments (by name) in one
	// call. Per-half failures are reported inside the result.
	List(ctx context.Context) ListResult

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// DownloadURL returns a short-lived presigned link for the document's
	// attachment. ErrNoAttachment when the document has no file.
	DownloadURL(ctx context.Context, id string) (string, error)

	// Create validates and inserts the draft, then, if a file is supplied,
	// uploads it under a key derived from the creator and the new document
	// id and patches the attachment columns. An upload failure after a
	// successful insert leaves the row in place without attachment and is
	// reported as ErrUpload.
	Create(ctx context.Context, draft model.DocumentDraft, createdBy string, file *FileUpload) (*model.Document, error)

	// Update applies a partial update. A supplied file is uploaded first
	// under the same deterministic key layout used by Create, overwriting
	// any previous blob for this document, and its metadata is merged into
	// the update.
	Update(ctx context.Context, id string, update model.DocumentUpdate, userID string, file *FileUpload) error

	// Delete removes the metadata row. The uploaded blob, if any, is left
	// behind; see the repository-level notes on orphaned objects.
	Delete(ctx context.Context, id string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store    storage.Storage
	docs     repository.DocumentRepository
	depts    repository.DepartmentRepository
	validate *validator.Validate
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, depts repository.DepartmentRepository) DocumentService {
	return &documentService{
		store:    store,
		docs:     docs,
		depts:    depts,
		validate: validator.New(),
	}
}

func (s *documentService) List(ctx context.Context) ListResult {
	var res ListResult

	docs, err := s.docs.List(ctx)
	if err != nil {
		res.DocumentsErr = fmt.Errorf("%w: documents: %v", ErrFetch, err)
	} else {
		res.Documents = docs
	}

	depts, err := s.depts.List(ctx)
	if err != nil {
		res.DepartmentsErr = fmt.Errorf("%w: departments: %v", ErrFetch, err)
	} else {
		res.Departments = depts
	}

	return res
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return doc, nil
}

// downloadExpiry bounds how long a presigned download link stays valid.
const downloadExpiry = 15 * time.Minute

func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !doc.HasAttachment() {
		return "", ErrNoAttachment
	}

	key := attachmentKey(doc.CreatedBy, doc.ID, doc.FileName)
	url, err := s.store.PresignGet(ctx, key, downloadExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: presign: %v", ErrFetch, err)
	}
	return url, nil
}

// attachmentKey is the deterministic object key for a document's file:
// one blob per document, owner-scoped, so re-uploads overwrite in place.
func attachmentKey(userID, docID, filename string) string {
	return userID + "/" + docID + filepath.Ext(filename)
}

func (s *documentService) Create(ctx context.Context, draft model.DocumentDraft, createdBy string, file *FileUpload) (*model.Document, error) {
	if createdBy == "" {
		return nil, fmt.Errorf("%w: created_by is required", ErrCreate)
	}
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	doc, err := s.docs.Create(ctx, draft, createdBy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreate, err)
	}

	if file == nil {
		return doc, nil
	}

	// Second phase: the row exists, upload the blob and patch the file
	// columns. If anything here fails the row stays behind without an
	// attachment; that window is part of the observed contract and is not
	// rolled back.
	url, err := s.uploadAttachment(ctx, createdBy, doc.ID, file)
	if err != nil {
		return doc, err
	}
	if err := s.docs.AttachFile(ctx, doc.ID, url, file.Name, file.Size); err != nil {
		return doc, fmt.Errorf("%w: attach metadata: %v", ErrUpload, err)
	}

	doc.FileURL = url
	doc.FileName = file.Name
	doc.FileSize = file.Size
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id string, update model.DocumentUpdate, userID string, file *FileUpload) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.validate.Struct(update); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if file != nil {
		url, err := s.uploadAttachment(ctx, userID, id, file)
		if err != nil {
			return err
		}
		update.FileURL = &url
		update.FileName = &file.Name
		update.FileSize = &file.Size
	}

	if update.Empty() {
		return nil
	}

	if err := s.docs.Update(ctx, id, update); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrUpdate, err)
	}
	return nil
}

func (s *documentService) uploadAttachment(ctx context.Context, userID, docID string, file *FileUpload) (string, error) {
	if file.Reader == nil {
		return "", fmt.Errorf("%w: reader is nil", ErrUpload)
	}
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrUpload)
	}

	key := attachmentKey(userID, docID, file.Name)
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	_, err := s.store.Put(ctx, key, file.Reader, storage.PutObjectOptions{
		Size:        file.Size,
		ContentType: ct,
		Metadata: map[string]string{
			"original-filename": file.Name,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return s.store.PublicURL(key), nil
}

// Delete removes the metadata row only. Any uploaded blob stays in the
// bucket; cleaning those up is a separate maintenance concern.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrDelete, err)
	}
	return nil
}
