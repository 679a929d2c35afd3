package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StartRefreshWatcher periodically inspects the stored access token and
// refreshes the session before the token expires. It blocks until ctx is
// cancelled, so run it on its own goroutine.
//
// A token that is opaque (not a JWT) or carries no expiry claim is left
// alone; such sessions only refresh reactively. A refresh failure clears the
// session (see Refresh), which also stops further refresh attempts until the
// user logs in again.
func (c *Controller) StartRefreshWatcher(ctx context.Context, interval, expiryMargin time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !c.IsAuthenticated() {
				continue
			}

			token, err := c.store.AccessToken(ctx)
			if err != nil || token == "" {
				continue
			}
			if !tokenExpiresWithin(token, expiryMargin) {
				continue
			}

			if err := c.Refresh(ctx); err != nil {
				c.log.Warn(ctx, "scheduled token refresh failed", "error", err)
			} else {
				c.log.Info(ctx, "access token refreshed")
			}

		case <-ctx.Done():
			return
		}
	}
}

// tokenExpiresWithin reports whether the JWT's exp claim falls within margin
// from now. The signature is deliberately not verified: the client only
// schedules with the claim, it never trusts the token's contents for
// authorization.
func tokenExpiresWithin(token string, margin time.Duration) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) <= margin
}
