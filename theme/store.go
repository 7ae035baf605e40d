package theme

import (
	"github.com/jrsteele09/go-storefront-client/storage"
	"github.com/pkg/errors"
)

const themeKey = "theme"

const (
	Dark  = "dark"
	Light = "light"
)

// Store persists the display theme preference in the same durable storage as
// the credential.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) (*Store, error) {
	if kv == nil {
		return nil, errors.New("[theme.NewStore] kv is required")
	}
	return &Store{kv: kv}, nil
}

// Current returns the saved theme, defaulting to dark when unset or
// unreadable.
func (s *Store) Current() string {
	value, err := s.kv.Get(themeKey)
	if err != nil || (value != Dark && value != Light) {
		return Dark
	}
	return value
}

func (s *Store) IsDark() bool {
	return s.Current() == Dark
}

func (s *Store) Set(theme string) error {
	if theme != Dark && theme != Light {
		return errors.Errorf("[theme.Store.Set] unknown theme %q", theme)
	}
	if err := s.kv.Set(themeKey, theme); err != nil {
		return errors.Wrap(err, "[theme.Store.Set] kv.Set")
	}
	return nil
}

// Toggle flips between dark and light and returns the new theme.
func (s *Store) Toggle() (string, error) {
	next := Dark
	if s.IsDark() {
		next = Light
	}
	if err := s.Set(next); err != nil {
		return "", err
	}
	return next, nil
}
