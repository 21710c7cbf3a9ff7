package store

import (
	"context"
	"sync"
	"time"

	"docboard/internal/model"
	"docboard/internal/review"
	"docboard/internal/service"
)

// Notifier receives user-facing outcome messages from store commands.
// Failures are surfaced here and never propagated as fatal.
type Notifier interface {
	Info(msg string)
	Error(msg string, err error)
}

// Snapshot is the point-in-time view handed to readers. Slices are copies;
// callers may not see partial writes.
type Snapshot struct {
	Documents   []model.Document
	Departments []model.Department
	Stats       model.DashboardStats
	Loading     bool
}

// Store holds the last-fetched documents/departments snapshot and derived
// stats, and funnels all mutations through the service followed by a full
// re-fetch. It is safe for concurrent use.
type Store struct {
	svc    service.DocumentService
	notify Notifier
	now    func() time.Time

	mu         sync.RWMutex
	documents  []model.Document
	department []model.Department
	stats      model.DashboardStats
	loading    bool

	nextSeq    uint64
	appliedSeq uint64
}

// New creates a Store with an empty snapshot. Loading stays true until the
// first Refresh completes.
func New(svc service.DocumentService, notify Notifier) *Store {
	return &Store{
		svc:     svc,
		notify:  notify,
		now:     time.Now,
		loading: true,
	}
}

// Snapshot returns a copied view of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]model.Document, len(s.documents))
	copy(docs, s.documents)
	depts := make([]model.Department, len(s.department))
	copy(depts, s.department)

	return Snapshot{
		Documents:   docs,
		Departments: depts,
		Stats:       s.stats,
		Loading:     s.loading,
	}
}

// Refresh re-fetches both collections and swaps them into the snapshot.
// Overlapping refreshes are tolerated: each call takes a sequence number
// when it starts, and a completion is discarded if a younger call's result
// has already been applied. Each half of the fetch applies independently;
// a failed half is reported and the previous data for that half is kept.
func (s *Store) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	res := s.svc.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq < s.appliedSeq {
		// A newer refresh finished first; this result is stale.
		return
	}
	s.appliedSeq = seq

	if res.DocumentsErr != nil {
		s.notify.Error("failed to load documents", res.DocumentsErr)
	} else {
		s.documents = res.Documents
		s.stats = review.ComputeStats(res.Documents, s.now())
	}

	if res.DepartmentsErr != nil {
		s.notify.Error("failed to load departments", res.DepartmentsErr)
	} else {
		s.department = res.Departments
	}

	s.loading = false
}

// Create validates and persists a new document via the service, then
// re-fetches the snapshot. On failure the snapshot is untouched.
func (s *Store) Create(ctx context.Context, draft model.DocumentDraft, createdBy string, file *service.FileUpload) error {
	if _, err := s.svc.Create(ctx, draft, createdBy, file); err != nil {
		s.notify.Error("failed to create document", err)
		return err
	}
	s.Refresh(ctx)
	s.notify.Info("document created")
	return nil
}

// Update applies a partial update via the service, then re-fetches.
func (s *Store) Update(ctx context.Context, id string, update model.DocumentUpdate, userID string, file *service.FileUpload) error {
	if err := s.svc.Update(ctx, id, update, userID, file); err != nil {
		s.notify.Error("failed to update document", err)
		return err
	}
	s.Refresh(ctx)
	s.notify.Info("document updated")
	return nil
}

// Remove hard-deletes a document via the service, then re-fetches.
func (s *Store) Remove(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		s.notify.Error("failed to delete document", err)
		return err
	}
	s.Refresh(ctx)
	s.notify.Info("document deleted")
	return nil
}
