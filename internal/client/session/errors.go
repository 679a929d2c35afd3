package session

import "errors"

var (
	// ErrValidation marks a pre-flight credential check failure; no network
	// call was made and session state is unchanged.
	ErrValidation = errors.New("validation error")

	// ErrNotAuthenticated is returned by operations that need a stored
	// session when there is none.
	ErrNotAuthenticated = errors.New("not authenticated")
)
