package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"shipdesk/internal/config"
	"shipdesk/internal/domain"
)

// ExportClient implements port.ExportDelegate against the remote /export endpoint.
type ExportClient struct {
	client
	endpoint string
}

// NewExportClient creates an ExportClient from the remote config.
func NewExportClient(cfg *config.RemoteConfig) *ExportClient {
	return &ExportClient{
		client:   newClient(cfg.BaseURL, cfg.Timeout()),
		endpoint: cfg.BaseURL + cfg.ExportPath,
	}
}

func (c *ExportClient) Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResponse, error) {
	if req.Data == nil {
		req.Data = []domain.FlatRow{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling export request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating export request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	status, respBody, err := c.do(ctx, httpReq)
	if err != nil {
		return nil, err
	}

	var out domain.ExportResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		if status >= 300 {
			return nil, statusError(c.endpoint, status, respBody)
		}
		return nil, fmt.Errorf("%w: decoding export response: %v", domain.ErrDelegateUnavailable, err)
	}
	return &out, nil
}
