package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-storefront-client/broadcast"
	interr "github.com/jrsteele09/go-storefront-client/internal/errors"
)

// Deps holds all collaborator dependencies for the session Store.
type Deps struct {
	API         API         // Storefront REST API
	Credentials Credentials // Persisted bearer credential
	Broadcast   Publisher   // Optional; nil disables cross-context signalling
}

// Store owns the authentication credential and the resolved user identity.
// It is the lifecycle root for every authenticated feature: the cart store
// and the UI observe its transitions rather than polling flags.
type Store struct {
	deps    Deps
	log     zerolog.Logger
	nowTime func() time.Time // nowTime function (injectable for testing)

	lock     sync.RWMutex
	state    State
	token    string
	user     *User
	handlers []TransitionHandler
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore initializes a session Store with required dependencies.
// Optional configuration can be provided via options (e.g., WithNowTime for testing).
func NewStore(deps Deps, options ...StoreOption) (*Store, error) {
	if deps.API == nil {
		return nil, errors.New("[session.NewStore] API is required")
	}
	if deps.Credentials == nil {
		return nil, errors.New("[session.NewStore] Credentials store is required")
	}

	store := &Store{
		deps:    deps,
		log:     zerolog.Nop(),
		nowTime: time.Now,
		state:   StateUnauthenticated,
	}

	for _, opt := range options {
		opt(store)
	}

	return store, nil
}

// OnTransition registers a handler for state transitions. Handlers are
// invoked synchronously, in registration order, after the store's identity
// and credential updates have been applied.
func (s *Store) OnTransition(handler TransitionHandler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Resolve validates a persisted credential at startup and resolves the user
// identity. A rejected or locally expired credential demotes silently: this
// is background validation, not a user-initiated action, so no error is
// surfaced.
func (s *Store) Resolve(ctx context.Context) {
	token, ok := s.deps.Credentials.Token()
	if !ok {
		s.setState(StateUnauthenticated)
		return
	}

	if expired, expiry := tokenExpired(token, s.nowTime()); expired {
		s.log.Debug().Time("expiry", expiry).Msg("session: persisted credential already expired")
		s.demote(ctx)
		return
	}

	s.lock.Lock()
	s.token = token
	s.lock.Unlock()
	s.setState(StateResolving)

	user, err := s.deps.API.Profile(ctx, token)
	switch {
	case err == nil:
		s.setUser(user)
		s.setState(StateAuthenticated)
	case errors.Is(err, interr.ErrUnauthorized):
		// Credential rejected by the server: purge it and demote quietly
		s.demote(ctx)
	default:
		// Transport failure: keep the credential for a later attempt but
		// remain unauthenticated
		s.log.Warn().Err(err).Msg("session: profile resolution failed")
		s.setUser(nil)
		s.setState(StateUnauthenticated)
	}
}

// Login exchanges credentials for a bearer token, persists it and resolves
// the user identity. The returned error carries the server's message for bad
// credentials or a generic network message; no retry is attempted.
func (s *Store) Login(ctx context.Context, username, password string) error {
	token, err := s.deps.API.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, interr.ErrNetwork) {
			return NetworkErr
		}
		return err
	}

	if err := s.deps.Credentials.Set(token); err != nil {
		return errors.Wrap(err, "[Store.Login] persisting credential")
	}
	s.lock.Lock()
	s.token = token
	s.lock.Unlock()
	s.publishCredentialChanged(ctx)

	user, err := s.deps.API.Profile(ctx, token)
	if err != nil {
		if errors.Is(err, interr.ErrUnauthorized) {
			// Server rejected the token it just issued; treat as invalid
			s.demote(ctx)
			return nil
		}
		// Identity stays unresolved; the login itself succeeded
		s.log.Warn().Err(err).Msg("session: profile fetch after login failed")
		return nil
	}

	s.setUser(user)
	s.setState(StateAuthenticated)
	return nil
}

// Register forwards a registration payload to the server. Success does not
// log the user in; callers log in separately. Validation failures come back
// as FieldErrors.
func (s *Store) Register(ctx context.Context, registration Registration) error {
	if err := s.deps.API.Register(ctx, registration); err != nil {
		if errors.Is(err, interr.ErrNetwork) {
			return GeneralFieldError(NetworkErr.Error())
		}
		return err
	}
	return nil
}

// UpdateProfile sends a partial update for the current user and replaces the
// identity record on success.
func (s *Store) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	token := s.Token()
	if token == "" {
		return NotAuthenticatedErr
	}

	user, err := s.deps.API.UpdateProfile(ctx, token, update)
	if err != nil {
		switch {
		case errors.Is(err, interr.ErrUnauthorized):
			s.demote(ctx)
			return NotAuthenticatedErr
		case errors.Is(err, interr.ErrNetwork):
			return GeneralFieldError(NetworkErr.Error())
		}
		return err
	}

	s.setUser(user)
	return nil
}

// Logout clears credential and identity synchronously with no network call.
// It is idempotent.
func (s *Store) Logout() {
	s.demote(context.Background())
}

// Invalidate purges the persisted credential and demotes to unauthenticated.
// It is the path taken whenever an authorized request receives a 401.
func (s *Store) Invalidate() {
	s.demote(context.Background())
}

func (s *Store) State() State {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.state
}

func (s *Store) Token() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.token
}

// User returns a copy of the resolved identity, or nil while unresolved.
func (s *Store) User() *User {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// IsAuthenticated is true iff the identity is resolved. A token may be
// present while this is still false (profile fetch in flight).
func (s *Store) IsAuthenticated() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.user != nil
}

func (s *Store) IsAdmin() bool {
	return s.User().IsAdmin()
}

// demote clears the persisted credential and local identity in one update
// and settles on unauthenticated. Other contexts are only signalled when a
// credential was actually removed.
func (s *Store) demote(ctx context.Context) {
	_, hadToken := s.deps.Credentials.Token()
	if err := s.deps.Credentials.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("session: failed to clear persisted credential")
	}

	s.lock.Lock()
	s.token = ""
	s.user = nil
	s.lock.Unlock()

	if hadToken {
		s.publishCredentialChanged(ctx)
	}
	s.setState(StateUnauthenticated)
}

func (s *Store) publishCredentialChanged(ctx context.Context) {
	if s.deps.Broadcast == nil {
		return
	}
	if err := s.deps.Broadcast.Publish(ctx, broadcast.CredentialChanged); err != nil {
		s.log.Warn().Err(err).Msg("session: credential change broadcast failed")
	}
}

func (s *Store) setUser(user *User) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.user = user
}

func (s *Store) setState(to State) {
	s.lock.Lock()
	from := s.state
	if from == to {
		s.lock.Unlock()
		return
	}
	s.state = to
	handlers := make([]TransitionHandler, len(s.handlers))
	copy(handlers, s.handlers)
	s.lock.Unlock()

	s.log.Debug().Str("from", string(from)).Str("to", string(to)).Msg("session: state transition")
	for _, handler := range handlers {
		handler(Transition{From: from, To: to})
	}
}
