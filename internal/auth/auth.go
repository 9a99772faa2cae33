// Package auth verifies caller bearer tokens against the external identity
// service. The identity is used purely as a gate; nothing else is done with
// it.
package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// ErrUnauthorized indicates a missing, invalid, or expired bearer token.
var ErrUnauthorized = eris.New("auth: invalid or expired token")

// Identity describes the verified caller.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verifier validates a bearer token and yields the caller's identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Option configures the HTTP verifier.
type Option func(*HTTPVerifier)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(v *HTTPVerifier) {
		v.http = hc
	}
}

// HTTPVerifier checks tokens against the identity service's user endpoint.
type HTTPVerifier struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPVerifier creates a verifier for the identity service at baseURL.
func NewHTTPVerifier(baseURL, apiKey string, opts ...Option) *HTTPVerifier {
	v := &HTTPVerifier{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Verify calls GET /auth/v1/user with the caller's token. A 401/403 maps to
// ErrUnauthorized; any other failure is an unexpected error.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, eris.Wrap(err, "auth: create request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", v.apiKey)

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "auth: verify token")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "auth: read response")
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, eris.Errorf("auth: unexpected status %d", resp.StatusCode)
	}

	var identity Identity
	if err := json.Unmarshal(body, &identity); err != nil {
		return nil, eris.Wrap(err, "auth: unmarshal identity")
	}
	if identity.ID == "" {
		return nil, ErrUnauthorized
	}
	return &identity, nil
}
