package mocks

import (
	"context"

	"docboard/internal/model"
	"docboard/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) List(ctx context.Context) service.ListResult {
	args := m.Called(ctx)
	return args.Get(0).(service.ListResult)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Create(ctx context.Context, draft model.DocumentDraft, createdBy string, file *service.FileUpload) (*model.Document, error) {
	args := m.Called(ctx, draft, createdBy, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, id string, update model.DocumentUpdate, userID string, file *service.FileUpload) error {
	args := m.Called(ctx, id, update, userID, file)
	return args.Error(0)
}

func (m *MockDocumentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
