package session

import "github.com/mpavlovs/authkeep/internal/client/models"

// State is the snapshot of the session exposed to consumers.
//
// IsLoading is true only between process start and the completion of the
// first hydration; consumers must not route between protected and public
// surfaces while it is set. User is nil when nobody is logged in. The User
// value is immutable once published; holders must not mutate it.
type State struct {
	User      *models.User
	IsLoading bool
}

// IsAuthenticated reports whether a user is present.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}
