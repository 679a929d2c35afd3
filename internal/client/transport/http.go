package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mpavlovs/authkeep/internal/client/models"
	"github.com/mpavlovs/authkeep/internal/common"
)

// Fallback messages used when an error response has no parseable body.
// They match what the backend reports for the same conditions.
const (
	registerFallback = "Registration failed"
	loginFallback    = "Login failed"
	refreshFallback  = "Token refresh failed"
)

// Doer is the subset of *http.Client the transport needs; injected so tests
// can run without a network.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient implements Client over JSON/HTTP against a configured base URL.
type HTTPClient struct {
	doer           Doer
	serverURL      url.URL
	requestTimeout time.Duration
	clientID       string
}

// NewHTTPClient builds a Client talking to serverURL. requestTimeout bounds
// every call (zero disables the bound). clientID, when non-empty, is sent as
// the X-Client-Id header on every request.
func NewHTTPClient(doer Doer, serverURL url.URL, requestTimeout time.Duration, clientID string) *HTTPClient {
	if doer == nil {
		doer = &http.Client{}
	}
	return &HTTPClient{
		doer:           doer,
		serverURL:      serverURL,
		requestTimeout: requestTimeout,
		clientID:       clientID,
	}
}

func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	return c.exchange(ctx, "auth/register", creds, registerFallback)
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	return c.exchange(ctx, "auth/login", creds, loginFallback)
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}
	return c.exchange(ctx, "auth/refresh", body, refreshFallback)
}

// Logout asks the server to revoke the access token. The response body and
// status are ignored; only a network-level failure is reported, and even that
// is advisory to the caller.
func (c *HTTPClient) Logout(ctx context.Context, accessToken string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	logoutURL := c.serverURL.JoinPath("auth/logout")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, logoutURL.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	c.setCommonHeaders(req)

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Health probes GET /health. Any 2xx counts as alive; everything else maps
// to ErrUnavailable.
func (c *HTTPClient) Health(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	healthURL := c.serverURL.JoinPath("health")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL.String(), nil)
	if err != nil {
		return err
	}
	c.setCommonHeaders(req)

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: health check status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// exchange performs one POST round trip and normalizes the outcome: a 2xx
// response with an AuthResponse body succeeds, a non-2xx response becomes an
// *APIError (message passthrough when the body parses, fallback otherwise),
// and a missing response becomes a wrapped ErrUnavailable.
func (c *HTTPClient) exchange(ctx context.Context, path string, body any, fallback string) (*models.AuthResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	u := c.serverURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.setCommonHeaders(req)

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiErrorFromBody(raw, fallback)
	}

	var ar models.AuthResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return nil, &APIError{Code: "invalid_response", Message: fallback}
	}
	return &ar, nil
}

func (c *HTTPClient) setCommonHeaders(req *http.Request) {
	if c.clientID != "" {
		req.Header.Set(common.ClientIDHeaderName, c.clientID)
	}
}

func (c *HTTPClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.requestTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.requestTimeout)
}

// apiErrorFromBody maps a non-2xx body to an APIError. Malformed or empty
// bodies yield the generic fallback message, never a crash.
func apiErrorFromBody(raw []byte, fallback string) *APIError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return &APIError{Code: "unknown_error", Message: fallback}
	}
	return &APIError{Code: body.Error, Message: body.Message}
}
