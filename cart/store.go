package cart

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-storefront-client/broadcast"
	interr "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/session"
)

// Deps holds all collaborator dependencies for the cart Store.
type Deps struct {
	API      API        // Storefront REST API
	Sessions Sessions   // Session store, the authorization source
	Signals  Subscriber // Optional; credential-change signals from other contexts
}

// Store maintains the authenticated user's cart as a server-mirrored cache
// with explicit refresh points. Every mutation except add triggers an
// authoritative refetch; add applies the snapshot embedded in the server's
// own response. Totals are never derived locally from stale deltas.
type Store struct {
	deps Deps
	log  zerolog.Logger

	lock     sync.RWMutex
	cart     *Cart
	err      error
	inflight int
	issued   uint64 // sequence handed to the most recently issued call
	applied  uint64 // sequence of the last snapshot applied
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore initializes a cart Store with required dependencies and registers
// it with the session transition stream and, when provided, the
// cross-context signal channel.
func NewStore(deps Deps, options ...StoreOption) (*Store, error) {
	if deps.API == nil {
		return nil, errors.New("[cart.NewStore] API is required")
	}
	if deps.Sessions == nil {
		return nil, errors.New("[cart.NewStore] Sessions is required")
	}

	store := &Store{
		deps: deps,
		log:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(store)
	}

	deps.Sessions.OnTransition(store.handleTransition)
	if deps.Signals != nil {
		deps.Signals.Subscribe(store.handleSignal)
	}

	return store, nil
}

// FetchCart replaces the local snapshot with the server's current cart. On a
// transport failure the previous snapshot is kept (stale-but-available) and
// the shared error is set; a 401 clears the snapshot and invalidates the
// session.
func (s *Store) FetchCart(ctx context.Context) error {
	token := s.deps.Sessions.Token()
	if !s.deps.Sessions.IsAuthenticated() || token == "" {
		s.reset()
		return nil
	}

	s.begin()
	defer s.end()
	seq := s.nextSeq()

	snapshot, err := s.deps.API.Cart(ctx, token)
	if err != nil {
		if errors.Is(err, interr.ErrUnauthorized) {
			s.reset()
			s.deps.Sessions.Invalidate()
			return nil
		}
		s.setErr(FetchFailedErr)
		return FetchFailedErr
	}

	s.apply(seq, snapshot)
	return nil
}

// AddToCart posts the item and applies the snapshot embedded in the server's
// response, with no separate refetch. Returns true on success so callers can
// branch (e.g. redirect to the cart on "buy now").
func (s *Store) AddToCart(ctx context.Context, productID int64, quantity int) bool {
	if quantity < 1 {
		s.setErr(InvalidQuantityErr)
		return false
	}
	token := s.deps.Sessions.Token()
	if !s.deps.Sessions.IsAuthenticated() || token == "" {
		// Fail fast locally: no network round trip without a credential
		s.setErr(LoginRequiredErr)
		return false
	}

	s.begin()
	defer s.end()
	seq := s.nextSeq()

	snapshot, err := s.deps.API.AddItem(ctx, token, productID, quantity)
	if err != nil {
		s.fail(err, AddFailedErr)
		return false
	}

	s.apply(seq, snapshot)
	return true
}

// UpdateItem changes a line's quantity, then unconditionally refetches the
// full cart so displayed totals are the server's. Quantities below 1 are
// rejected before any request is sent.
func (s *Store) UpdateItem(ctx context.Context, itemID int64, quantity int) bool {
	if quantity < 1 {
		s.setErr(InvalidQuantityErr)
		return false
	}
	token := s.deps.Sessions.Token()
	if token == "" {
		return false
	}

	s.begin()
	defer s.end()

	if err := s.deps.API.UpdateItem(ctx, token, itemID, quantity); err != nil {
		s.fail(err, UpdateFailedErr)
		return false
	}

	_ = s.FetchCart(ctx)
	s.setErr(nil)
	return true
}

// RemoveItem deletes a line and refetches the cart.
func (s *Store) RemoveItem(ctx context.Context, itemID int64) bool {
	token := s.deps.Sessions.Token()
	if token == "" {
		return false
	}

	s.begin()
	defer s.end()

	if err := s.deps.API.RemoveItem(ctx, token, itemID); err != nil {
		s.fail(err, RemoveFailedErr)
		return false
	}

	_ = s.FetchCart(ctx)
	s.setErr(nil)
	return true
}

// ClearCart issues a bulk delete. On success the snapshot is set to the
// canonical empty shape without a refetch; this is the sole operation that
// applies a locally constructed value rather than a server echo.
func (s *Store) ClearCart(ctx context.Context) bool {
	token := s.deps.Sessions.Token()
	if token == "" {
		return false
	}

	s.begin()
	defer s.end()
	seq := s.nextSeq()

	if err := s.deps.API.Clear(ctx, token); err != nil {
		s.fail(err, ClearFailedErr)
		return false
	}

	s.apply(seq, Empty())
	return true
}

// ClearError dismisses the current error with no network effect.
func (s *Store) ClearError() {
	s.setErr(nil)
}

// Cart returns the current snapshot; nil when unauthenticated or not yet
// fetched. Snapshots are replaced wholesale and must not be mutated.
func (s *Store) Cart() *Cart {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.cart
}

func (s *Store) Err() error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.err
}

// Loading is true while any store operation has a request in flight.
// Overlapping operations each independently raise and lower it.
func (s *Store) Loading() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.inflight > 0
}

// ItemCount returns the server-reported total quantity, 0 without a snapshot.
func (s *Store) ItemCount() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.cart == nil {
		return 0
	}
	return s.cart.TotalItems
}

// Total returns the server-reported total price, "0.00" without a snapshot.
func (s *Store) Total() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.cart == nil {
		return "0.00"
	}
	return s.cart.TotalPrice
}

// handleTransition reacts to session state changes: fetch on becoming
// authenticated, drop local state on becoming unauthenticated.
func (s *Store) handleTransition(t session.Transition) {
	switch t.To {
	case session.StateAuthenticated:
		_ = s.FetchCart(context.Background())
	case session.StateUnauthenticated:
		s.reset()
	}
}

// handleSignal reconciles with a credential change made in another execution
// context: refetch while still authenticated with a credential present,
// otherwise drop local state so this context never shows a cart belonging to
// a session terminated elsewhere.
func (s *Store) handleSignal(event string) {
	if event != broadcast.CredentialChanged {
		return
	}
	if s.deps.Sessions.IsAuthenticated() && s.deps.Sessions.Token() != "" {
		_ = s.FetchCart(context.Background())
		return
	}
	s.reset()
}

// fail maps an operation error onto the store: 401 invalidates the session,
// a server-provided message is surfaced as-is, anything else falls back to
// the operation's generic message.
func (s *Store) fail(err error, fallback error) {
	if errors.Is(err, interr.ErrUnauthorized) {
		s.reset()
		s.deps.Sessions.Invalidate()
		return
	}
	var statusErr *interr.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		s.setErr(statusErr)
		return
	}
	s.setErr(fallback)
}

// reset drops the snapshot and any pending error without a network call.
func (s *Store) reset() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.cart = nil
	s.err = nil
}

func (s *Store) setErr(err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.err = err
}

func (s *Store) begin() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.inflight++
}

func (s *Store) end() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.inflight--
}

func (s *Store) nextSeq() uint64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.issued++
	return s.issued
}

// apply installs a snapshot unless a newer response has already been
// applied; rapid overlapping mutations must never be clobbered by a late
// arrival. A successful response always clears the shared error.
func (s *Store) apply(seq uint64, snapshot *Cart) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if seq < s.applied {
		s.log.Debug().Uint64("seq", seq).Uint64("applied", s.applied).Msg("cart: discarding out-of-order response")
		s.err = nil
		return
	}
	s.applied = seq
	s.cart = snapshot
	s.err = nil
}
