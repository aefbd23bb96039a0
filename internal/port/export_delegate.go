package port

import (
	"context"

	"shipdesk/internal/domain"
)

// ExportDelegate abstracts the remote export formatter.
type ExportDelegate interface {
	Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResponse, error)
}
