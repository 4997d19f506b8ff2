package users

import (
	"context"

	"github.com/pkg/errors"
	"github.com/roomhub-io/go-booking-client/gateway"
)

// Client exposes the user profile endpoints.
type Client struct {
	gw *gateway.Client
}

func NewClient(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// Me fetches the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.gw.Get(ctx, "/users/me", &user); err != nil {
		return nil, errors.Wrap(err, "[users.Client.Me]")
	}
	return &user, nil
}

// UpdateMe patches the authenticated user's profile and returns the result.
func (c *Client) UpdateMe(ctx context.Context, update Update) (*User, error) {
	var user User
	if err := c.gw.Patch(ctx, "/users/me", update, &user); err != nil {
		return nil, errors.Wrap(err, "[users.Client.UpdateMe]")
	}
	return &user, nil
}
