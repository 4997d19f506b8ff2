// Package organizations covers the multi-tenant side of the platform: each
// organization is a hotel chain or property owner, and users belong to one or
// more of them with a per-organization role.
package organizations

import "time"

// SubscriptionPlan is the organization's billing tier.
type SubscriptionPlan string

const (
	PlanFree         SubscriptionPlan = "FREE"
	PlanBasic        SubscriptionPlan = "BASIC"
	PlanProfessional SubscriptionPlan = "PROFESSIONAL"
	PlanEnterprise   SubscriptionPlan = "ENTERPRISE"
)

// Status is the organization account status.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusTrial     Status = "TRIAL"
	StatusExpired   Status = "EXPIRED"
)

// MemberRole is a user's role inside one organization.
type MemberRole string

const (
	MemberOwner   MemberRole = "OWNER"
	MemberAdmin   MemberRole = "ADMIN"
	MemberManager MemberRole = "MANAGER"
	MemberStaff   MemberRole = "STAFF"
	MemberMember  MemberRole = "MEMBER"
)

// InvitationStatus tracks the lifecycle of a membership invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationDeclined InvitationStatus = "DECLINED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

type Organization struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description,omitempty"`
	ContactEmail       string           `json:"contact_email"`
	ContactPhone       string           `json:"contact_phone,omitempty"`
	Website            string           `json:"website,omitempty"`
	Address            string           `json:"address,omitempty"`
	City               string           `json:"city,omitempty"`
	Country            string           `json:"country,omitempty"`
	SubscriptionPlan   SubscriptionPlan `json:"subscription_plan"`
	Status             Status           `json:"status"`
	MaxProperties      int              `json:"max_properties"`
	MaxUsers           int              `json:"max_users"`
	MaxRoomsPerProp    int              `json:"max_rooms_per_property"`
	FeaturesEnabled    []string         `json:"features_enabled,omitempty"`
	OwnerID            string           `json:"owner_id,omitempty"`
	CreatedAt          time.Time        `json:"created_at,omitempty"`
	UpdatedAt          time.Time        `json:"updated_at,omitempty"`
}

type Member struct {
	ID                  string     `json:"id"`
	OrganizationID      string     `json:"organization_id"`
	UserID              string     `json:"user_id"`
	Role                MemberRole `json:"role"`
	CanManageProperties bool       `json:"can_manage_properties"`
	CanManageBookings   bool       `json:"can_manage_bookings"`
	CanManageUsers      bool       `json:"can_manage_users"`
	CanViewAnalytics    bool       `json:"can_view_analytics"`
	CanManageBilling    bool       `json:"can_manage_billing"`
	IsActive            bool       `json:"is_active"`
	InvitedAt           time.Time  `json:"invited_at,omitempty"`
	JoinedAt            *time.Time `json:"joined_at,omitempty"`
}

type Invitation struct {
	ID              string           `json:"id"`
	OrganizationID  string           `json:"organization_id"`
	Email           string           `json:"email"`
	Role            MemberRole       `json:"role,omitempty"`
	Status          InvitationStatus `json:"status"`
	InvitationToken string           `json:"invitation_token,omitempty"`
	CreatedAt       time.Time        `json:"created_at,omitempty"`
	ExpiresAt       time.Time        `json:"expires_at,omitempty"`
}

// Stats is the usage snapshot shown on the organization dashboard.
type Stats struct {
	TotalProperties int     `json:"total_properties"`
	TotalRooms      int     `json:"total_rooms"`
	TotalBookings   int     `json:"total_bookings"`
	TotalRevenue    float64 `json:"total_revenue"`
	ActiveBookings  int     `json:"active_bookings"`
	OccupancyRate   float64 `json:"occupancy_rate"`
	PropertiesUsed  int     `json:"properties_used"`
	PropertiesLimit int     `json:"properties_limit"`
	UsersUsed       int     `json:"users_used"`
	UsersLimit      int     `json:"users_limit"`
}

// Create is the POST /organizations payload.
type Create struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Website      string `json:"website,omitempty"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Update is the PATCH /organizations/{id} payload.
type Update struct {
	Name            *string           `json:"name,omitempty"`
	Description     *string           `json:"description,omitempty"`
	ContactPhone    *string           `json:"contact_phone,omitempty"`
	Website         *string           `json:"website,omitempty"`
	City            *string           `json:"city,omitempty"`
	Country         *string           `json:"country,omitempty"`
	Plan            *SubscriptionPlan `json:"subscription_plan,omitempty"`
	FeaturesEnabled *[]string         `json:"features_enabled,omitempty"`
}
