package xapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/utano/haikufinder/internal/config"
)

// DefaultBaseURL is the X API v2 endpoint root.
const DefaultBaseURL = "https://api.x.com"

// maxErrorBodySize limits how much of an error response body is read
// for diagnostics.
const maxErrorBodySize = 4 * 1024

// Client talks to the X v2 API with OAuth 1.0a user-context signing.
//
// Design decision: We build the client from config.Credentials rather than
// taking a pre-built http.Client because the OAuth signing transport is the
// whole point of this type; callers should not need to know oauth1 exists.
type Client struct {
	// httpClient carries the oauth1 signing transport.
	httpClient *http.Client

	// baseURL is the API root, overridable for tests.
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root. Used by tests to point the client
// at a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely, dropping
// OAuth signing. Used by tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a posting client for the given credentials.
//
// The constructor does not talk to the network; call VerifyCredentials to
// check that the keys actually work. This separation keeps client creation
// testable and lets dry runs construct nothing at all.
func NewClient(creds config.Credentials, timeout time.Duration, opts ...Option) *Client {
	oauthConfig := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	httpClient := oauthConfig.Client(oauth1.NoContext, token)
	httpClient.Timeout = timeout

	c := &Client{
		httpClient: httpClient,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VerifyCredentials performs a lightweight authenticated request to confirm
// the credentials work before anything is posted. Returns the account
// username on success.
func (c *Client) VerifyCredentials(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/2/users/me", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build preflight request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("credential preflight failed: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return "", err
	}

	var body struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode preflight response: %w", err)
	}
	return body.Data.Username, nil
}

// PostStatus submits a status and returns the API-assigned post ID.
func (c *Client) PostStatus(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", ErrEmptyStatus
	}

	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to encode status: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/2/tweets", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return "", err
	}

	var body struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode post response: %w", err)
	}
	if body.Data.ID == "" {
		return "", fmt.Errorf("%w: response carried no post ID", ErrRejected)
	}
	return body.Data.ID, nil
}

// statusError maps a non-success HTTP response to a sentinel error with
// whatever diagnostic detail the API included.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize)) //nolint:errcheck // best-effort diagnostics

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (HTTP %d): %s", ErrUnauthorized, resp.StatusCode, bytes.TrimSpace(detail))
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w (HTTP %d)", ErrRateLimited, resp.StatusCode)
	default:
		return fmt.Errorf("%w (HTTP %d): %s", ErrRejected, resp.StatusCode, bytes.TrimSpace(detail))
	}
}
