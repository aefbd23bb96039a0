package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shipdesk/internal/domain"
	"shipdesk/internal/port"
)

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, files []port.UploadFile) (*domain.IngestResult, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IngestResult), args.Error(1)
}
