package session

import "context"

// API is the slice of the storefront REST API the session store consumes.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, registration Registration) error
	Profile(ctx context.Context, token string) (*User, error)
	UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*User, error)
}

// Credentials persists the bearer token across restarts. Whenever the stored
// credential becomes absent the store force-clears identity in the same
// update.
type Credentials interface {
	Token() (string, bool)
	Set(token string) error
	Clear() error
}

// Publisher announces credential changes to other execution contexts.
type Publisher interface {
	Publish(ctx context.Context, event string) error
}
