package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-storefront-client/session"
)

// Users lists every account. Admin only; the server enforces the role, the
// client just forwards the bearer token.
func (c *Client) Users(ctx context.Context, token string) ([]session.User, error) {
	resp, err := c.do(ctx, http.MethodGet, RouteUsers, token, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, errorFromResponse(resp)
	}

	var users []session.User
	if err := decode(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser applies an admin edit to any account and returns the updated
// record. Validation failures come back as session.FieldErrors.
func (c *Client) UpdateUser(ctx context.Context, token string, userID int64, update session.AdminUserUpdate) (*session.User, error) {
	resp, err := c.do(ctx, http.MethodPatch, fmt.Sprintf(RouteUserByID, userID), token, update)
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

// ToggleUserStatus flips an account's active flag. Callers refetch the list
// for the new state.
func (c *Client) ToggleUserStatus(ctx context.Context, token string, userID int64) error {
	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf(RouteUserToggleStatus, userID), token, nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return errorFromResponse(resp)
	}
	return nil
}
