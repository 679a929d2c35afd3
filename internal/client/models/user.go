// Package models defines client-side data models shared by the transport,
// token store, and session layers.
package models

// User is the authenticated account as reported by the backend. Immutable
// once fetched; it is only replaced wholesale by a new AuthResponse.
type User struct {
	// ID is an opaque server-assigned identifier.
	ID string `json:"id"`

	// Email the account was registered with.
	Email string `json:"email"`

	// CreatedAt is the account creation timestamp as returned by the server.
	// Kept as a string: the client never computes with it, only displays it.
	CreatedAt string `json:"created_at"`
}
