package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shipdesk/internal/domain"
)

// MockExportDelegate is a mock implementation of port.ExportDelegate.
type MockExportDelegate struct {
	mock.Mock
}

func (m *MockExportDelegate) Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportResponse), args.Error(1)
}
