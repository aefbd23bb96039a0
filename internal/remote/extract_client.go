package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"shipdesk/internal/config"
	"shipdesk/internal/domain"
	"shipdesk/internal/port"
)

// ExtractClient implements port.Extractor by posting documents to the remote
// /upload endpoint as multipart "files[]" parts.
type ExtractClient struct {
	client
	endpoint string
}

// NewExtractClient creates an ExtractClient from the remote config.
func NewExtractClient(cfg *config.RemoteConfig) *ExtractClient {
	return &ExtractClient{
		client:   newClient(cfg.BaseURL, cfg.ExtractTimeout()),
		endpoint: cfg.BaseURL + cfg.ExtractPath,
	}
}

func (c *ExtractClient) Extract(ctx context.Context, files []port.UploadFile) (*domain.IngestResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[]"; filename=%q`, f.Name))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("creating part for %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Body); err != nil {
			return nil, fmt.Errorf("copying %s: %w", f.Name, err)
		}
	}
	if err := mw.WriteField("ez_id", ""); err != nil {
		return nil, fmt.Errorf("writing form field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	status, body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var out domain.IngestResult
	if err := json.Unmarshal(body, &out); err != nil {
		if status >= 300 {
			return nil, statusError(c.endpoint, status, body)
		}
		return nil, fmt.Errorf("%w: decoding upload response: %v", domain.ErrDelegateUnavailable, err)
	}
	return &out, nil
}
