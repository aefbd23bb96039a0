// Package delivery hands a finished export to the user, either inline in the
// response or through object storage behind a presigned download URL.
package delivery

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"

	"shipdesk/internal/domain"
	"shipdesk/internal/logger"
	"shipdesk/internal/port"
)

// Delivery modes accepted by New.
const (
	ModeInline = "inline"
	ModeS3     = "s3"
)

// New returns the Deliverer for mode. storage is only required for ModeS3.
func New(mode string, storage port.ObjectStorage, keyPrefix string) (Deliverer, error) {
	switch mode {
	case "", ModeInline:
		return InlineDeliverer{}, nil
	case ModeS3:
		if storage == nil {
			return nil, fmt.Errorf("delivery mode %q requires object storage", mode)
		}
		return NewObjectStoreDeliverer(storage, keyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown delivery mode %q", mode)
	}
}

// Deliverer prepares an export result for the user.
type Deliverer interface {
	Deliver(ctx context.Context, res *domain.ExportResult) (*domain.ExportResult, error)
}

// InlineDeliverer returns the payload unchanged so the handler streams it.
type InlineDeliverer struct{}

func (InlineDeliverer) Deliver(_ context.Context, res *domain.ExportResult) (*domain.ExportResult, error) {
	return res, nil
}

// ObjectStoreDeliverer uploads the payload and replaces it with a download URL.
type ObjectStoreDeliverer struct {
	storage   port.ObjectStorage
	keyPrefix string
	newID     func() string
}

// NewObjectStoreDeliverer creates an ObjectStoreDeliverer writing under keyPrefix.
func NewObjectStoreDeliverer(storage port.ObjectStorage, keyPrefix string) *ObjectStoreDeliverer {
	return &ObjectStoreDeliverer{
		storage:   storage,
		keyPrefix: keyPrefix,
		newID:     func() string { return uuid.New().String() },
	}
}

// Deliver uploads res.Body. Results that already carry a collaborator download
// URL and no body are passed through.
func (d *ObjectStoreDeliverer) Deliver(ctx context.Context, res *domain.ExportResult) (*domain.ExportResult, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: nothing to deliver", domain.ErrExportFailed)
	}
	if len(res.Body) == 0 && res.DownloadURL != "" {
		return res, nil
	}

	key := path.Join(d.keyPrefix, d.newID(), res.Filename)
	if _, err := d.storage.Put(ctx, port.PutObjectInput{
		Key:         key,
		Body:        bytes.NewReader(res.Body),
		ContentType: res.ContentType,
		Filename:    res.Filename,
	}); err != nil {
		return nil, fmt.Errorf("%w: storing export: %v", domain.ErrExportFailed, err)
	}

	url, err := d.storage.PresignedURL(ctx, key)
	if err != nil {
		// Best-effort cleanup of the orphaned object.
		if delErr := d.storage.Delete(ctx, key); delErr != nil {
			logger.FromContext(ctx).Error(delErr, "failed to delete export after presign error", "key", key)
		}
		return nil, fmt.Errorf("%w: presigning export: %v", domain.ErrExportFailed, err)
	}

	logger.FromContext(ctx).Info("export stored", "key", key, "format", res.Format, "bytes", len(res.Body))

	out := *res
	out.Body = nil
	out.DownloadURL = url
	return &out, nil
}
