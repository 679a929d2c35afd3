package transport

import "errors"

// ErrUnavailable marks a network-level failure: no usable response was
// obtained from the server. Match with errors.Is.
var ErrUnavailable = errors.New("server unavailable")

// APIError is a structured failure reported by the backend as a non-2xx
// response with an {error, message} body. Message is surfaced verbatim so
// the UI layer can display it; Code is the machine-readable discriminator.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
