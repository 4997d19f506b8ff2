package users

import "time"

// RoleType is the closed set of roles the backend issues.
type RoleType string

const (
	RoleCustomer RoleType = "CUSTOMER"
	RoleStaff    RoleType = "STAFF"
	RoleAdmin    RoleType = "ADMIN"
)

// Valid reports whether the role is one the backend can issue.
func (r RoleType) Valid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// User is the backend's user profile as returned by GET /users/me. The
// profile is immutable on the client except through an explicit update call.
type User struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	FullName              string    `json:"full_name,omitempty"`
	Phone                 string    `json:"phone,omitempty"`
	Role                  RoleType  `json:"role"`
	Timezone              string    `json:"timezone,omitempty"`
	Language              string    `json:"language,omitempty"`
	AvatarURL             string    `json:"avatar_url,omitempty"`
	IsActive              bool      `json:"is_active"`
	EmailVerified         bool      `json:"email_verified"`
	CurrentOrganizationID string    `json:"current_organization_id,omitempty"`
	CreatedAt             time.Time `json:"created_at,omitempty"`
	UpdatedAt             time.Time `json:"updated_at,omitempty"`
}

// Update is the PATCH /users/me payload. Nil fields are left untouched
// server-side.
type Update struct {
	FullName  *string `json:"full_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Timezone  *string `json:"timezone,omitempty"`
	Language  *string `json:"language,omitempty"`
}
