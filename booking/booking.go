// Package booking covers the guest-facing booking surface: property search,
// availability quotes, and the booking lifecycle.
package booking

import "time"

// Status is the booking lifecycle state as issued by the backend.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// PropertySummary is one search hit.
type PropertySummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	City           string  `json:"city,omitempty"`
	Country        string  `json:"country,omitempty"`
	PropertyType   string  `json:"property_type,omitempty"`
	OrganizationID string  `json:"organization_id,omitempty"`
	MinPrice       Amount  `json:"min_price,omitempty"`
	Currency       string  `json:"currency,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
}

// SearchResult is the paged answer from GET /search/properties.
type SearchResult struct {
	Properties []PropertySummary `json:"properties"`
	Total      int               `json:"total"`
	Limit      int               `json:"limit"`
	Offset     int               `json:"offset"`
}

// SearchParams narrows a property search. Zero values are omitted from the
// query string.
type SearchParams struct {
	City           string
	CheckIn        *Date
	CheckOut       *Date
	Guests         int
	PropertyType   string
	MinPrice       *Amount
	MaxPrice       *Amount
	OrganizationID string
	Limit          int
	Offset         int
}

// QuoteRequest asks the backend to price a stay and check inventory.
type QuoteRequest struct {
	PropertyID string `json:"property_id"`
	RoomTypeID string `json:"room_type_id"`
	RatePlanID string `json:"rate_plan_id"`
	CheckIn    Date   `json:"check_in"`
	CheckOut   Date   `json:"check_out"`
	NumRooms   int    `json:"num_rooms"`
}

// QuoteResponse reports availability and the total price for the stay.
type QuoteResponse struct {
	Available      bool   `json:"available"`
	RemainingRooms int    `json:"remaining_rooms"`
	TotalPrice     Amount `json:"total_price"`
	Currency       string `json:"currency"`
}

// Create is the POST /bookings payload.
type Create struct {
	PropertyID string `json:"property_id"`
	RoomTypeID string `json:"room_type_id"`
	CheckIn    Date   `json:"check_in"`
	CheckOut   Date   `json:"check_out"`
	RoomsCount int    `json:"rooms_count"`
	TotalPrice Amount `json:"total_price"`
	Currency   string `json:"currency"`
	GuestName  string `json:"guest_name,omitempty"`
	GuestEmail string `json:"guest_email,omitempty"`
	GuestPhone string `json:"guest_phone,omitempty"`
}

// Update is the PATCH /bookings/{id} payload.
type Update struct {
	CheckIn    *Date   `json:"check_in,omitempty"`
	CheckOut   *Date   `json:"check_out,omitempty"`
	RoomsCount *int    `json:"rooms_count,omitempty"`
	Status     *Status `json:"status,omitempty"`
	TotalPrice *Amount `json:"total_price,omitempty"`
	GuestName  *string `json:"guest_name,omitempty"`
	GuestEmail *string `json:"guest_email,omitempty"`
	GuestPhone *string `json:"guest_phone,omitempty"`
}

// Booking is the backend's booking record.
type Booking struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id,omitempty"`
	PropertyID string     `json:"property_id"`
	RoomTypeID string     `json:"room_type_id"`
	CheckIn    Date       `json:"check_in"`
	CheckOut   Date       `json:"check_out"`
	RoomsCount int        `json:"rooms_count"`
	TotalPrice Amount     `json:"total_price"`
	Currency   string     `json:"currency"`
	Status     Status     `json:"status"`
	GuestName  string     `json:"guest_name,omitempty"`
	GuestEmail string     `json:"guest_email,omitempty"`
	GuestPhone string     `json:"guest_phone,omitempty"`
	HoldUntil  *time.Time `json:"hold_until,omitempty"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
	UpdatedAt  time.Time  `json:"updated_at,omitempty"`
}

// Nights is the stay length in nights.
func (b Booking) Nights() int {
	return b.CheckIn.Nights(b.CheckOut)
}
