// Package remote implements the collaborator ports over HTTP: document extraction,
// export formatting and chat.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"shipdesk/internal/domain"
)

// maxResponseBytes caps how much of a collaborator response is read.
const maxResponseBytes = 64 << 20

// client is the shared HTTP plumbing of the collaborator clients.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, timeout time.Duration) client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// do sends req and returns the body of any response the collaborator produced.
// Transport failures wrap domain.ErrDelegateUnavailable. Non-2xx responses are
// returned with their body so JSON error envelopes can still be decoded.
func (c client) do(ctx context.Context, req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", domain.ErrDelegateUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: reading response: %v", domain.ErrDelegateUnavailable, err)
	}
	return resp.StatusCode, body, nil
}

func statusError(endpoint string, status int, body []byte) error {
	const maxSnippet = 256
	if len(body) > maxSnippet {
		body = body[:maxSnippet]
	}
	return fmt.Errorf("%w: %s returned status %d: %s", domain.ErrDelegateUnavailable, endpoint, status, string(body))
}
