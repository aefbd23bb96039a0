package port

import (
	"context"
	"io"

	"shipdesk/internal/domain"
)

// UploadFile is one document handed to the extraction collaborator.
type UploadFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Extractor abstracts the remote document extraction service.
type Extractor interface {
	Extract(ctx context.Context, files []UploadFile) (*domain.IngestResult, error)
}
