// Package common contains shared constants and small helpers used across
// authkeep components.
package common

// ClientIDHeaderName is the HTTP header used to carry the per-install
// client identifier on outbound requests.
const ClientIDHeaderName = "X-Client-Id"
