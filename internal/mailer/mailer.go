package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider is the interface for outbound email relays
type Provider interface {
	// Send relays one email to every recipient; recipients are already
	// validated by the caller. No retries on failure.
	Send(ctx context.Context, req *SendRequest) (*SendResult, error)
}

// SendRequest represents one outbound email
type SendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendResult carries the relay's message id
type SendResult struct {
	Id string `json:"id"`
}

// ResendProvider relays email through a Resend-compatible HTTP API
type ResendProvider struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewResendProvider creates a new ResendProvider
func NewResendProvider(apiURL, apiKey string) *ResendProvider {
	return &ResendProvider{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Send posts the email to the relay API
func (p *ResendProvider) Send(ctx context.Context, req *SendRequest) (*SendResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal email request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build email request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("email relay request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read relay response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("email relay status %d: %s", resp.StatusCode, string(respBody))
	}

	var result SendResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode relay response: %w", err)
	}
	return &result, nil
}
