// Package transport translates the four auth intents (register, login,
// refresh, logout) plus a health probe into HTTP requests against a
// configured base URL, and normalizes results into either a models.AuthResponse
// or a typed failure.
//
// # Protocol
//
// Each call is a single JSON request/response round trip. Success is decided
// by HTTP status class, not by payload shape:
//
//	POST /auth/register  {email, password}        -> AuthResponse
//	POST /auth/login     {email, password}        -> AuthResponse
//	POST /auth/refresh   {refresh_token}          -> AuthResponse
//	POST /auth/logout    (Authorization: Bearer)  -> ignored
//	GET  /health                                  -> liveness only
//
// # Error Handling
//
// A non-2xx response with a parseable {error, message} body yields an
// *APIError carrying the server's message verbatim; an absent or malformed
// body yields an APIError with a generic per-operation fallback. A failure to
// obtain any response wraps ErrUnavailable, which callers match with
// errors.Is.
//
// All operations accept context.Context and honor cancellation; a per-call
// timeout from configuration bounds otherwise-unbounded network waits.
package transport
