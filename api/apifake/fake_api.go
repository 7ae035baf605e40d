package apifake

import (
	"context"
	"net/http"
	"sync"

	"github.com/jrsteele09/go-storefront-client/cart"
	interr "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/session"
)

var (
	_ session.API = (*FakeAPI)(nil)
	_ cart.API    = (*FakeAPI)(nil)
)

// FakeAPI is a scriptable in-memory stand-in for the storefront REST API.
// Tests set the accepted credentials, the identity record, the snapshot the
// server would answer with, and per-method error injections. Every call is
// counted so tests can assert on network activity (or the absence of it).
type FakeAPI struct {
	lock sync.Mutex

	Username string
	Password string
	Token    string        // token issued on successful login
	User     *session.User // identity behind Token

	Snapshot *cart.Cart // snapshot returned by Cart and AddItem

	LoginErr         error
	RegisterErr      error
	ProfileErr       error
	UpdateProfileErr error
	CartErr          error
	AddErr           error
	UpdateErr        error
	RemoveErr        error
	ClearErr         error

	// OnCall, when set, runs after the method captured its result but before
	// it returns. Used to stage overlapping in-flight requests.
	OnCall func(method string)

	calls map[string]int
}

func New() *FakeAPI {
	return &FakeAPI{calls: make(map[string]int)}
}

// Calls reports how many times the named method was invoked.
func (f *FakeAPI) Calls(method string) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.calls[method]
}

func (f *FakeAPI) record(method string) {
	f.lock.Lock()
	f.calls[method]++
	f.lock.Unlock()
}

func (f *FakeAPI) hook(method string) {
	f.lock.Lock()
	onCall := f.OnCall
	f.lock.Unlock()
	if onCall != nil {
		onCall(method)
	}
}

func (f *FakeAPI) Login(_ context.Context, username, password string) (string, error) {
	f.record("Login")
	f.lock.Lock()
	loginErr, token := f.LoginErr, f.Token
	badCredentials := username != f.Username || password != f.Password
	f.lock.Unlock()

	if loginErr != nil {
		return "", loginErr
	}
	if badCredentials {
		return "", &interr.StatusError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	}
	return token, nil
}

func (f *FakeAPI) Register(_ context.Context, _ session.Registration) error {
	f.record("Register")
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.RegisterErr
}

func (f *FakeAPI) Profile(_ context.Context, token string) (*session.User, error) {
	f.record("Profile")
	f.lock.Lock()
	profileErr, user, valid := f.ProfileErr, f.User, token == f.Token
	f.lock.Unlock()

	if profileErr != nil {
		return nil, profileErr
	}
	if !valid || user == nil {
		return nil, interr.ErrUnauthorized
	}
	record := *user
	return &record, nil
}

func (f *FakeAPI) UpdateProfile(_ context.Context, token string, update session.ProfileUpdate) (*session.User, error) {
	f.record("UpdateProfile")
	f.lock.Lock()
	updateErr, valid := f.UpdateProfileErr, token == f.Token
	f.lock.Unlock()

	if updateErr != nil {
		return nil, updateErr
	}
	if !valid {
		return nil, interr.ErrUnauthorized
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	record := *f.User
	if update.FirstName != nil {
		record.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		record.LastName = *update.LastName
	}
	if update.Email != nil {
		record.Email = *update.Email
	}
	f.User = &record
	result := record
	return &result, nil
}

func (f *FakeAPI) Cart(_ context.Context, token string) (*cart.Cart, error) {
	f.record("Cart")
	f.lock.Lock()
	cartErr, snapshot, valid := f.CartErr, f.Snapshot, token == f.Token
	f.lock.Unlock()

	f.hook("Cart")

	if cartErr != nil {
		return nil, cartErr
	}
	if !valid {
		return nil, interr.ErrUnauthorized
	}
	return snapshot, nil
}

func (f *FakeAPI) AddItem(_ context.Context, token string, _ int64, _ int) (*cart.Cart, error) {
	f.record("AddItem")
	f.lock.Lock()
	addErr, snapshot, valid := f.AddErr, f.Snapshot, token == f.Token
	f.lock.Unlock()

	if addErr != nil {
		return nil, addErr
	}
	if !valid {
		return nil, interr.ErrUnauthorized
	}
	return snapshot, nil
}

func (f *FakeAPI) UpdateItem(_ context.Context, token string, _ int64, _ int) error {
	f.record("UpdateItem")
	return f.mutationResult(token, func() error { return f.UpdateErr })
}

func (f *FakeAPI) RemoveItem(_ context.Context, token string, _ int64) error {
	f.record("RemoveItem")
	return f.mutationResult(token, func() error { return f.RemoveErr })
}

func (f *FakeAPI) Clear(_ context.Context, token string) error {
	f.record("Clear")
	return f.mutationResult(token, func() error { return f.ClearErr })
}

func (f *FakeAPI) mutationResult(token string, injected func() error) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if err := injected(); err != nil {
		return err
	}
	if token != f.Token {
		return interr.ErrUnauthorized
	}
	return nil
}
