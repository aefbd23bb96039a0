package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"shipdesk/internal/config"
	"shipdesk/internal/domain"
)

// ChatClient implements port.ChatDelegate against the remote /query endpoint.
type ChatClient struct {
	client
	endpoint string
}

// NewChatClient creates a ChatClient from the remote config.
func NewChatClient(cfg *config.RemoteConfig) *ChatClient {
	return &ChatClient{
		client:   newClient(cfg.BaseURL, cfg.Timeout()),
		endpoint: cfg.BaseURL + cfg.ChatPath,
	}
}

func (c *ChatClient) Ask(ctx context.Context, question string) (*domain.ChatReply, error) {
	form := url.Values{"question": {question}}
	req, err := http.NewRequest(http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	status, body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var out domain.ChatReply
	if err := json.Unmarshal(body, &out); err != nil {
		if status >= 300 {
			return nil, statusError(c.endpoint, status, body)
		}
		return nil, fmt.Errorf("%w: decoding chat response: %v", domain.ErrDelegateUnavailable, err)
	}
	return &out, nil
}
