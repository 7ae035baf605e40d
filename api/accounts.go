package api

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	interr "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/session"
)

var _ session.API = (*Client)(nil)

// Login exchanges credentials for a bearer token. Failures carry the
// server's detail message; a 401 here means bad credentials, not an expired
// session, so it is not mapped to the invalidation sentinel.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, RouteLogin, "", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		message := serverMessage(resp.body)
		if message == "" {
			message = "Invalid credentials"
		}
		return "", &interr.StatusError{Status: resp.status, Message: message}
	}

	var payload struct {
		Access string `json:"access"`
	}
	if err := decode(resp, &payload); err != nil {
		return "", err
	}
	if payload.Access == "" {
		return "", errors.Wrap(interr.ErrServerResponse, "[Client.Login] missing access token")
	}
	return payload.Access, nil
}

// Register forwards a registration payload. Validation failures come back as
// session.FieldErrors so callers can show per-field messages.
func (c *Client) Register(ctx context.Context, registration session.Registration) error {
	resp, err := c.do(ctx, http.MethodPost, RouteRegister, "", registration)
	if err != nil {
		return err
	}
	if resp.ok() {
		return nil
	}
	if message := serverMessage(resp.body); message != "" {
		return &interr.StatusError{Status: resp.status, Message: message}
	}
	if fields := fieldErrors(resp.body); fields != nil {
		return fields
	}
	return errorFromResponse(resp)
}

// Profile resolves the identity behind a bearer token.
func (c *Client) Profile(ctx context.Context, token string) (*session.User, error) {
	resp, err := c.do(ctx, http.MethodGet, RouteProfile, token, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	var payload struct {
		User *session.User `json:"user"`
	}
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, errors.Wrap(interr.ErrServerResponse, "[Client.Profile] missing user record")
	}
	return payload.User, nil
}

// UpdateProfile applies a partial update to the current user and returns the
// updated record.
func (c *Client) UpdateProfile(ctx context.Context, token string, update session.ProfileUpdate) (*session.User, error) {
	resp, err := c.do(ctx, http.MethodPatch, RouteMe, token, update)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		if resp.status != http.StatusUnauthorized {
			if fields := fieldErrors(resp.body); fields != nil {
				return nil, fields
			}
		}
		return nil, errorFromResponse(resp)
	}

	user := &session.User{}
	if err := decode(resp, user); err != nil {
		return nil, err
	}
	return user, nil
}
