package booking

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/roomhub-io/go-booking-client/gateway"
)

// Client exposes search, quoting and the booking lifecycle.
type Client struct {
	gw *gateway.Client

	// newIdempotencyKey is injectable for tests.
	newIdempotencyKey func() string
}

func NewClient(gw *gateway.Client) *Client {
	return &Client{
		gw:                gw,
		newIdempotencyKey: func() string { return uuid.New().String() },
	}
}

// SearchProperties runs a property search. Guests works unauthenticated; the
// gateway simply sends no bearer credential in that case.
func (c *Client) SearchProperties(ctx context.Context, params SearchParams) (*SearchResult, error) {
	query := url.Values{}
	if params.City != "" {
		query.Set("city", params.City)
	}
	if params.CheckIn != nil {
		query.Set("check_in", params.CheckIn.String())
	}
	if params.CheckOut != nil {
		query.Set("check_out", params.CheckOut.String())
	}
	if params.Guests > 0 {
		query.Set("guests", strconv.Itoa(params.Guests))
	}
	if params.PropertyType != "" {
		query.Set("property_type", params.PropertyType)
	}
	if params.MinPrice != nil {
		query.Set("min_price", params.MinPrice.String())
	}
	if params.MaxPrice != nil {
		query.Set("max_price", params.MaxPrice.String())
	}
	if params.OrganizationID != "" {
		query.Set("organization_id", params.OrganizationID)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}

	path := "/search/properties"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result SearchResult
	if err := c.gw.Get(ctx, path, &result); err != nil {
		return nil, errors.Wrap(err, "[booking.Client.SearchProperties]")
	}
	return &result, nil
}

// Quote prices a stay and checks room inventory for the requested range.
func (c *Client) Quote(ctx context.Context, request QuoteRequest) (*QuoteResponse, error) {
	if request.CheckIn.Nights(request.CheckOut) <= 0 {
		return nil, errors.New("[booking.Client.Quote] check_out must be after check_in")
	}
	var quote QuoteResponse
	if err := c.gw.Post(ctx, "/availability/quote", request, &quote); err != nil {
		return nil, errors.Wrap(err, "[booking.Client.Quote]")
	}
	return &quote, nil
}

// CreateBooking places a booking. An idempotency key rides along so a replay
// after a network hiccup cannot double-book the stay.
func (c *Client) CreateBooking(ctx context.Context, create Create) (*Booking, error) {
	if create.CheckIn.Nights(create.CheckOut) <= 0 {
		return nil, errors.New("[booking.Client.CreateBooking] check_out must be after check_in")
	}
	body := struct {
		Create
		IdempotencyKey string `json:"idempotency_key"`
	}{Create: create, IdempotencyKey: c.newIdempotencyKey()}

	var booked Booking
	if err := c.gw.Post(ctx, "/bookings", body, &booked); err != nil {
		return nil, errors.Wrap(err, "[booking.Client.CreateBooking]")
	}
	return &booked, nil
}

// ListBookings returns the caller's bookings (all bookings for staff/admin).
func (c *Client) ListBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.gw.Get(ctx, "/bookings", &bookings); err != nil {
		return nil, errors.Wrap(err, "[booking.Client.ListBookings]")
	}
	return bookings, nil
}

func (c *Client) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	var booked Booking
	if err := c.gw.Get(ctx, "/bookings/"+bookingID, &booked); err != nil {
		return nil, errors.Wrap(err, "[booking.Client.GetBooking]")
	}
	return &booked, nil
}

func (c *Client) UpdateBooking(ctx context.Context, bookingID string, update Update) (*Booking, error) {
	var booked Booking
	if err := c.gw.Patch(ctx, "/bookings/"+bookingID, update, &booked); err != nil {
		return nil, errors.Wrap(err, "[booking.Client.UpdateBooking]")
	}
	return &booked, nil
}

// CancelBooking deletes the booking; the backend releases held inventory.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	if err := c.gw.Delete(ctx, "/bookings/"+bookingID); err != nil {
		return errors.Wrap(err, "[booking.Client.CancelBooking]")
	}
	return nil
}
