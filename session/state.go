package session

// State is the session store's position in its lifecycle. A store starts
// unauthenticated, moves through resolving while a persisted credential is
// validated, and settles on authenticated or unauthenticated.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateResolving       State = "resolving"
	StateAuthenticated   State = "authenticated"
)

// Transition is emitted to registered handlers whenever the state changes.
// Handlers run synchronously on the goroutine that caused the change, after
// identity and credential updates have been applied.
type Transition struct {
	From State
	To   State
}

// TransitionHandler observes session state changes.
type TransitionHandler func(Transition)
