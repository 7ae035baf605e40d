package credentials

import (
	"github.com/jrsteele09/go-storefront-client/storage"
	"github.com/pkg/errors"
)

// accessTokenKey is the fixed storage key holding the bearer token. Its
// absence means logged out.
const accessTokenKey = "accessToken"

// Store persists the bearer credential across restarts. It is the only state
// shared with other running clients, so reads always go through the backing
// KV rather than a cached copy.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) (*Store, error) {
	if kv == nil {
		return nil, errors.New("[credentials.NewStore] kv is required")
	}
	return &Store{kv: kv}, nil
}

// Token returns the persisted credential and whether one is present.
func (s *Store) Token() (string, bool) {
	value, err := s.kv.Get(accessTokenKey)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (s *Store) Set(token string) error {
	if token == "" {
		return errors.New("[credentials.Store.Set] empty token")
	}
	if err := s.kv.Set(accessTokenKey, token); err != nil {
		return errors.Wrap(err, "[credentials.Store.Set] kv.Set")
	}
	return nil
}

func (s *Store) Clear() error {
	if err := s.kv.Delete(accessTokenKey); err != nil {
		return errors.Wrap(err, "[credentials.Store.Clear] kv.Delete")
	}
	return nil
}
