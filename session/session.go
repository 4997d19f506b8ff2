// Package session holds the client's authentication state machine. It is the
// only writer of session state; UI layers read from it and call its actions,
// which in turn go through the gateway client.
package session

import (
	"github.com/roomhub-io/go-booking-client/organizations"
	"github.com/roomhub-io/go-booking-client/users"
)

// State is the session machine's current position. The machine is cyclic:
// anonymous -> otp_pending | authenticated -> anonymous, for the life of the
// process.
type State string

const (
	StateAnonymous     State = "anonymous"
	StateOTPPending    State = "otp_pending"
	StateAuthenticated State = "authenticated"
)

// Snapshot is the durable part of the session, persisted under a single
// storage key on every transition. Tokens are deliberately absent: they live
// in the token vault's own storage.
type Snapshot struct {
	User                *users.User                  `json:"user,omitempty"`
	CurrentOrganization *organizations.Organization  `json:"current_organization,omitempty"`
	Organizations       []organizations.Organization `json:"organizations,omitempty"`
	Authenticated       bool                         `json:"authenticated"`
}
