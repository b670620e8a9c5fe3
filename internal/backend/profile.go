package backend

import (
	"context"
	"net/http"
)

// Profile fetches the profile for the current session token.
//
// Returns ErrNoToken without sending a request when the token provider has
// nothing; an unauthenticated fetch can only fail.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	if c.token() == "" {
		return nil, ErrNoToken
	}

	env, err := c.do(ctx, "profile", http.MethodGet, "/auth/profile", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// UpdateProfile patches profile fields for the current session.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Envelope, error) {
	if c.token() == "" {
		return nil, ErrNoToken
	}
	return c.do(ctx, "update_profile", http.MethodPatch, "/auth/update", req)
}
