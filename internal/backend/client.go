package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/souhardya/vervoer-core/internal/infrastructure/config"
)

// TokenProvider supplies the current bearer token, or "" when logged out.
// The session store owns the token; the client only reads it per request.
type TokenProvider func() string

// Client talks to the remote Vervoer REST backend.
//
// All methods follow the same failure policy: a transport failure returns a
// *NetworkError, a backend-reported failure returns an *AuthError, and no
// method ever retries. Every failure is terminal for that user action.
//
// Thread Safety: safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenProvider
}

// New creates a backend client from config.
//
// Parameters:
//   - cfg: Backend configuration (base URL, timeout)
//   - token: Provider for the current bearer token (may return "")
func New(cfg config.BackendConfig, token TokenProvider) *Client {
	httpClient := &http.Client{}
	if cfg.Timeout > 0 {
		httpClient.Timeout = time.Duration(cfg.Timeout) * time.Second
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		token:   token,
	}
}

// do sends a JSON request and decodes the envelope response.
//
// A nil body sends no payload. The bearer header is attached whenever the
// token provider returns a non-empty token, matching the mobile client's
// prepare-headers behaviour.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (*Envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: building request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // read side only

	var env Envelope
	if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr != nil {
		// A non-2xx with an unreadable body is still a backend rejection.
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &AuthError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("%s: decoding response: %w", op, decodeErr)
	}

	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return nil, &AuthError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return &env, nil
}
