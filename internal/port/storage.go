package port

import (
	"context"
	"io"
)

// PutObjectInput describes an export payload to be stored.
type PutObjectInput struct {
	Key         string
	Body        io.Reader
	ContentType string
	Filename    string
}

// PutObjectOutput contains the result of a successful upload.
type PutObjectOutput struct {
	Location string
	ETag     string
}

// ObjectStorage stores export payloads in a bucket fixed at construction time.
type ObjectStorage interface {
	Put(ctx context.Context, input PutObjectInput) (*PutObjectOutput, error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string) (string, error)
}
