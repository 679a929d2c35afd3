package transport

import (
	"context"

	"github.com/mpavlovs/authkeep/internal/client/models"
)

// Client is the transport-agnostic contract for the credential-exchange
// operations against the backend.
//
// Register, Login, and Refresh return the server's AuthResponse on success,
// a *APIError for structured backend failures, or a wrapped ErrUnavailable
// when no response was obtained. Logout is advisory token revocation: callers
// clear local state regardless of its outcome. Health is a liveness probe.
type Client interface {
	Register(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Health(ctx context.Context) error
}
