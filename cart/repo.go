package cart

import (
	"context"

	"github.com/jrsteele09/go-storefront-client/session"
)

// API is the slice of the storefront REST API the cart store consumes. Every
// call requires a valid bearer token.
type API interface {
	Cart(ctx context.Context, token string) (*Cart, error)
	AddItem(ctx context.Context, token string, productID int64, quantity int) (*Cart, error)
	UpdateItem(ctx context.Context, token string, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, token string, itemID int64) error
	Clear(ctx context.Context, token string) error
}

// Sessions is the cart store's view of the session store: authorization
// state, the bearer token for requests, invalidation on 401, and the
// transition stream the cart reacts to.
type Sessions interface {
	Token() string
	IsAuthenticated() bool
	Invalidate()
	OnTransition(handler session.TransitionHandler)
}

// Subscriber delivers credential-change signals from other execution
// contexts (another running client logging in or out).
type Subscriber interface {
	Subscribe(handler func(event string)) (unsubscribe func())
}
