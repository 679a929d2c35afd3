// Package session owns the in-memory authentication state and orchestrates
// the token store and the transport behind a single public contract.
//
// # State machine
//
// A Controller starts Initializing (IsLoading set), leaves that state exactly
// once when Hydrate completes, and from then on moves between Unauthenticated
// and Authenticated:
//
//	Hydrate:   Initializing -> Authenticated | Unauthenticated (no network)
//	Login /
//	Register:  Unauthenticated -> Authenticated on success; unchanged on failure
//	Logout:    any -> Unauthenticated, unconditionally
//	Refresh:   Authenticated -> Authenticated on success; any failure drops
//	           the session entirely (a dead refresh token is unrecoverable)
//
// # Consistency
//
// Mutations are serialized per controller; observers reading State() while an
// operation is in flight see the pre-transition snapshot, and a new snapshot
// is published only after persistence has been attempted. Subscribers get
// each published snapshot on a channel.
//
// # Failure policy
//
// Hydration and logout fail open: storage and network problems there degrade
// to the logged-out state and are logged, never surfaced. That asymmetry is a
// deliberate UX contract: the app must always reach a usable state. Login
// and register, by contrast, surface every failure to the caller, including
// the case where the network succeeded but persisting the session did not;
// the session is then not adopted, so memory and disk cannot diverge.
package session
