// Package tokenstore persists issued credentials on-device, encrypted at
// rest.
//
// Three logical entries make up a stored session: the access token, the
// refresh token, and the serialized user profile. SaveSession and
// ClearSession move them as a set inside one SQL transaction, so observers
// never see a partially written session on disk. Reads treat anything that
// cannot be unsealed or decoded as absent; a damaged store degrades to
// "no session", it never takes the process down.
//
// The store does not decide who is logged in; that is the session
// controller's job. It only answers "what is on disk" and keeps it sealed.
package tokenstore
