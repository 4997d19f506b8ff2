package organizations

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/roomhub-io/go-booking-client/gateway"
)

// Client exposes the organization endpoints.
type Client struct {
	gw *gateway.Client
}

func NewClient(gw *gateway.Client) *Client {
	return &Client{gw: gw}
}

// List returns the organizations the authenticated user is a member of.
func (c *Client) List(ctx context.Context) ([]Organization, error) {
	var orgs []Organization
	if err := c.gw.Get(ctx, "/organizations", &orgs); err != nil {
		return nil, errors.Wrap(err, "[organizations.Client.List]")
	}
	return orgs, nil
}

func (c *Client) Get(ctx context.Context, orgID string) (*Organization, error) {
	var org Organization
	if err := c.gw.Get(ctx, "/organizations/"+orgID, &org); err != nil {
		return nil, errors.Wrap(err, "[organizations.Client.Get]")
	}
	return &org, nil
}

func (c *Client) Create(ctx context.Context, create Create) (*Organization, error) {
	var org Organization
	if err := c.gw.Post(ctx, "/organizations", create, &org); err != nil {
		return nil, errors.Wrap(err, "[organizations.Client.Create]")
	}
	return &org, nil
}

func (c *Client) Update(ctx context.Context, orgID string, update Update) (*Organization, error) {
	var org Organization
	if err := c.gw.Patch(ctx, "/organizations/"+orgID, update, &org); err != nil {
		return nil, errors.Wrap(err, "[organizations.Client.Update]")
	}
	return &org, nil
}

// Switch makes orgID the user's active organization. The server verifies
// membership before confirming.
func (c *Client) Switch(ctx context.Context, orgID string) error {
	if err := c.gw.Post(ctx, fmt.Sprintf("/organizations/%s/switch", orgID), nil, nil); err != nil {
		return errors.Wrap(err, "[organizations.Client.Switch]")
	}
	return nil
}

func (c *Client) Members(ctx context.Context, orgID string) ([]Member, error) {
	var members []Member
	if err := c.gw.Get(ctx, fmt.Sprintf("/organizations/%s/members", orgID), &members); err != nil {
		return nil, errors.Wrap(err, "[organizations.Client.Members]")
	}
	return members, nil
}

// Invite sends a membership invitation to the given email address.
func (c *Client) Invite(ctx context.Context, orgID, email string) (*Invitation, error) {
	var invitation Invitation
	body := map[string]string{"email": email}
	if err := c.gw.Post(ctx, fmt.Sprintf("/organizations/%s/invitations", orgID), body, &invitation); err != nil {
		return nil, errors.Wrap(err, "[organizations.Client.Invite]")
	}
	return &invitation, nil
}

func (c *Client) Invitations(ctx context.Context, orgID string) ([]Invitation, error) {
	var invitations []Invitation
	if err := c.gw.Get(ctx, fmt.Sprintf("/organizations/%s/invitations", orgID), &invitations); err != nil {
		return nil, errors.Wrap(err, "[organizations.Client.Invitations]")
	}
	return invitations, nil
}

// RespondInvitation accepts or declines an invitation by its token.
func (c *Client) RespondInvitation(ctx context.Context, invitationToken string, accept bool) error {
	body := map[string]bool{"accept": accept}
	if err := c.gw.Post(ctx, fmt.Sprintf("/organizations/invitations/%s/respond", invitationToken), body, nil); err != nil {
		return errors.Wrap(err, "[organizations.Client.RespondInvitation]")
	}
	return nil
}

func (c *Client) Stats(ctx context.Context, orgID string) (*Stats, error) {
	var stats Stats
	if err := c.gw.Get(ctx, fmt.Sprintf("/organizations/%s/stats", orgID), &stats); err != nil {
		return nil, errors.Wrap(err, "[organizations.Client.Stats]")
	}
	return &stats, nil
}
