package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/mpavlovs/authkeep/internal/client/models"
	"github.com/mpavlovs/authkeep/internal/client/tokenstore"
	"github.com/mpavlovs/authkeep/internal/client/transport"
	"github.com/mpavlovs/authkeep/internal/logging"
)

// minPasswordLen mirrors the backend's registration rule so obviously bad
// input is rejected before a network round trip.
const minPasswordLen = 6

// Controller is the single source of truth for "is there an authenticated
// user". It reconciles the token store and the transport and exposes a
// snapshot State plus the four mutating operations.
//
// Mutating operations (Hydrate, Login, Register, Logout, Refresh) are
// serialized by a single per-controller lock: exactly one authoritative
// session mutation is in flight at a time, and concurrent callers queue
// rather than race. Reads never block behind a mutation in flight; they see
// the last published snapshot, so state does not flicker through partial
// values.
type Controller struct {
	store  *tokenstore.Store
	client transport.Client
	log    logging.Logger

	opMu sync.Mutex // serializes session mutations

	stateMu sync.RWMutex
	state   State

	subsMu  sync.Mutex
	subs    map[int]chan State
	nextSub int
}

// NewController builds a Controller in the Initializing state: no user,
// IsLoading set. Call Hydrate before routing any UI.
func NewController(store *tokenstore.Store, client transport.Client, log logging.Logger) *Controller {
	return &Controller{
		store:  store,
		client: client,
		log:    log,
		state:  State{User: nil, IsLoading: true},
		subs:   make(map[int]chan State),
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// IsAuthenticated reports whether a user is currently logged in.
func (c *Controller) IsAuthenticated() bool {
	return c.State().IsAuthenticated()
}

// Subscribe registers a listener that receives the State published after
// every transition. The returned cancel func must be called to release the
// subscription. A slow listener may miss intermediate snapshots; State()
// always has the latest.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan State, 8)
	c.subs[id] = ch

	cancel := func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Hydrate restores the session from the token store: if both a user and an
// access token are present, the user is provisionally trusted and the state
// becomes Authenticated, with no network call, so an offline app open stays
// fast. Anything else (missing entries, partial writes, storage failures)
// lands in Unauthenticated; hydration fails open and never returns an error.
//
// Hydrate always leaves IsLoading false. Running it again performs the same
// reads and publishes the same outcome.
func (c *Controller) Hydrate(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	user, err := c.store.LoadUser(ctx)
	if err != nil {
		c.log.Warn(ctx, "hydration: failed to read stored user", "error", err)
		user = nil
	}

	token, err := c.store.AccessToken(ctx)
	if err != nil {
		c.log.Warn(ctx, "hydration: failed to read access token", "error", err)
		token = ""
	}

	if user != nil && token != "" {
		c.log.Info(ctx, "session restored", "user_id", user.ID)
		c.setUser(user)
		return
	}
	c.setUser(nil)
}

// Login exchanges credentials for a session. On success the session is
// persisted first and only then published; on any failure the previous state
// and storage are left untouched and the error is returned for display.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	resp, err := c.client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	return c.adoptSession(ctx, resp)
}

// Register creates an account and logs the new user in. Same persistence
// and failure semantics as Login.
func (c *Controller) Register(ctx context.Context, email, password string) error {
	if err := validateCredentials(email, password); err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	resp, err := c.client.Register(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return err
	}
	return c.adoptSession(ctx, resp)
}

// Logout ends the session unconditionally. Server-side revocation is
// advisory: its failure is logged and ignored, as is a storage failure while
// clearing. The user-visible guarantee is "you are logged out locally",
// which is why Logout returns nothing.
func (c *Controller) Logout(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	token, err := c.store.AccessToken(ctx)
	if err != nil {
		c.log.Warn(ctx, "logout: failed to read access token", "error", err)
	}
	if token != "" {
		if err := c.client.Logout(ctx, token); err != nil {
			c.log.Warn(ctx, "logout: server revocation failed", "error", err)
		}
	}

	if err := c.store.ClearSession(ctx); err != nil {
		c.log.Error(ctx, "logout: failed to clear stored session", "error", err)
	}
	c.setUser(nil)
}

// Refresh exchanges the stored refresh token for a fresh session. A dead or
// missing refresh token makes the session unrecoverable, so any failure
// clears both storage and memory before the error is returned.
func (c *Controller) Refresh(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		c.log.Warn(ctx, "refresh: failed to read refresh token", "error", err)
	}
	if refreshToken == "" {
		c.dropSession(ctx)
		return fmt.Errorf("%w: no refresh token available", ErrNotAuthenticated)
	}

	resp, err := c.client.Refresh(ctx, refreshToken)
	if err != nil {
		c.dropSession(ctx)
		return err
	}
	return c.adoptSession(ctx, resp)
}

// adoptSession persists an authoritative AuthResponse and publishes the new
// user. When persistence fails the session is not adopted: a half-stored
// login must not present as logged in, so memory stays as-is for login
// (Unauthenticated) and a best-effort cleanup removes whatever landed.
// Callers hold opMu.
func (c *Controller) adoptSession(ctx context.Context, resp *models.AuthResponse) error {
	if err := c.store.SaveSession(ctx, resp); err != nil {
		c.log.Error(ctx, "failed to persist session", "error", err, "user_id", resp.User.ID)
		if cerr := c.store.ClearSession(ctx); cerr != nil {
			c.log.Error(ctx, "failed to clean up after persist failure", "error", cerr)
		}
		c.setUser(nil)
		return fmt.Errorf("failed to persist session: %w", err)
	}

	user := resp.User
	c.setUser(&user)
	return nil
}

// dropSession clears storage best-effort and publishes Unauthenticated.
// Callers hold opMu.
func (c *Controller) dropSession(ctx context.Context) {
	if err := c.store.ClearSession(ctx); err != nil {
		c.log.Error(ctx, "failed to clear stored session", "error", err)
	}
	c.setUser(nil)
}

// setUser publishes a new snapshot. IsLoading becomes false on the first
// transition and never comes back.
func (c *Controller) setUser(u *models.User) {
	c.stateMu.Lock()
	c.state = State{User: u, IsLoading: false}
	st := c.state
	c.stateMu.Unlock()

	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- st:
		default:
		}
	}
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	return nil
}
