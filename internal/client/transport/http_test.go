package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpavlovs/authkeep/internal/client/models"
)

// ---- fake doer ----

type fakeDoer struct {
	resp *http.Response
	err  error

	lastReq  *http.Request
	lastBody []byte
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if req.Body != nil {
		b, _ := io.ReadAll(req.Body)
		f.lastBody = b
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func newTestClient(t *testing.T, d *fakeDoer) *HTTPClient {
	t.Helper()
	u, err := url.Parse("http://localhost:8080")
	require.NoError(t, err)
	return NewHTTPClient(d, *u, 5*time.Second, "install-1")
}

const authResponseBody = `{
  "access_token": "T1",
  "refresh_token": "R1",
  "expires_in": 3600,
  "user": {"id": "u1", "email": "a@b.com", "created_at": "2024-01-01T00:00:00Z"}
}`

// ---- TESTS ----

func TestLogin_Success(t *testing.T) {
	d := &fakeDoer{resp: jsonResponse(http.StatusOK, authResponseBody)}
	c := newTestClient(t, d)

	got, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "T1", got.AccessToken)
	assert.Equal(t, "R1", got.RefreshToken)
	assert.Equal(t, int64(3600), got.ExpiresIn)
	assert.Equal(t, "u1", got.User.ID)

	require.NotNil(t, d.lastReq)
	assert.Equal(t, http.MethodPost, d.lastReq.Method)
	assert.Equal(t, "/auth/login", d.lastReq.URL.Path)
	assert.Equal(t, "application/json", d.lastReq.Header.Get("Content-Type"))
	assert.Equal(t, "install-1", d.lastReq.Header.Get("X-Client-Id"))
	assert.JSONEq(t, `{"email":"a@b.com","password":"secret1"}`, string(d.lastBody))
}

func TestRegister_Success_UsesRegisterPath(t *testing.T) {
	d := &fakeDoer{resp: jsonResponse(http.StatusCreated, authResponseBody)}
	c := newTestClient(t, d)

	_, err := c.Register(context.Background(), models.Credentials{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "/auth/register", d.lastReq.URL.Path)
}

func TestLogin_ErrorBody_MessagePassthrough(t *testing.T) {
	d := &fakeDoer{resp: jsonResponse(http.StatusUnauthorized,
		`{"error":"invalid_credentials","message":"Bad password"}`)}
	c := newTestClient(t, d)

	_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "nope"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_credentials", apiErr.Code)
	assert.Equal(t, "Bad password", apiErr.Message)
	assert.Equal(t, "Bad password", err.Error())
}

func TestLogin_MalformedErrorBody_GenericFallback(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "empty body", body: ``},
		{name: "json without message", body: `{"error":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDoer{resp: jsonResponse(http.StatusInternalServerError, tt.body)}
			c := newTestClient(t, d)

			_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "p"})
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "Login failed", apiErr.Message)
		})
	}
}

func TestRegister_Fallback_IsOperationSpecific(t *testing.T) {
	d := &fakeDoer{resp: jsonResponse(http.StatusBadRequest, `nope`)}
	c := newTestClient(t, d)

	_, err := c.Register(context.Background(), models.Credentials{Email: "a@b.com", Password: "p"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Registration failed", apiErr.Message)
}

func TestLogin_NetworkError_MapsToUnavailable(t *testing.T) {
	d := &fakeDoer{err: errors.New("connection refused")}
	c := newTestClient(t, d)

	_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "p"})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_MalformedSuccessBody_Fallback(t *testing.T) {
	d := &fakeDoer{resp: jsonResponse(http.StatusOK, `not-json`)}
	c := newTestClient(t, d)

	_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "p"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid_response", apiErr.Code)
}

func TestRefresh_SendsRefreshToken(t *testing.T) {
	d := &fakeDoer{resp: jsonResponse(http.StatusOK, authResponseBody)}
	c := newTestClient(t, d)

	got, err := c.Refresh(context.Background(), "R0")
	require.NoError(t, err)
	assert.Equal(t, "/auth/refresh", d.lastReq.URL.Path)
	assert.JSONEq(t, `{"refresh_token":"R0"}`, string(d.lastBody))
	assert.Equal(t, "R1", got.RefreshToken)
}

func TestRefresh_FailureFallback(t *testing.T) {
	d := &fakeDoer{resp: jsonResponse(http.StatusUnauthorized, ``)}
	c := newTestClient(t, d)

	_, err := c.Refresh(context.Background(), "dead")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Token refresh failed", apiErr.Message)
}

func TestLogout_SetsBearerHeader(t *testing.T) {
	d := &fakeDoer{resp: jsonResponse(http.StatusOK, `{"message":"ok"}`)}
	c := newTestClient(t, d)

	require.NoError(t, c.Logout(context.Background(), "T1"))
	assert.Equal(t, "/auth/logout", d.lastReq.URL.Path)
	assert.Equal(t, "Bearer T1", d.lastReq.Header.Get("Authorization"))
}

func TestLogout_NonOKStatusIgnored(t *testing.T) {
	d := &fakeDoer{resp: jsonResponse(http.StatusInternalServerError, ``)}
	c := newTestClient(t, d)

	require.NoError(t, c.Logout(context.Background(), "T1"))
}

func TestLogout_NetworkErrorReported(t *testing.T) {
	d := &fakeDoer{err: errors.New("dial timeout")}
	c := newTestClient(t, d)

	err := c.Logout(context.Background(), "T1")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		doer    *fakeDoer
		wantErr bool
	}{
		{name: "alive", doer: &fakeDoer{resp: jsonResponse(http.StatusOK, `{"status":"healthy"}`)}},
		{name: "server error", doer: &fakeDoer{resp: jsonResponse(http.StatusServiceUnavailable, ``)}, wantErr: true},
		{name: "network failure", doer: &fakeDoer{err: errors.New("refused")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.doer)
			err := c.Health(context.Background())
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnavailable)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "/health", tt.doer.lastReq.URL.Path)
			}
		})
	}
}
