// Package cli provides the interactive authkeep command-line client.
//
// It wires configuration, the encrypted local token store, the HTTP auth
// transport, and an interactive REPL. Typical flow: hydrate the persisted
// session, start a background token refresh watcher, and execute user
// commands.
//
// Key features:
//   - Register / Login / Logout
//   - Whoami (current session state)
//   - Ping (server health probe)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
