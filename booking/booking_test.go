package booking_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roomhub-io/go-booking-client/booking"
	"github.com/roomhub-io/go-booking-client/gateway"
	"github.com/roomhub-io/go-booking-client/token"
	faketokenrepo "github.com/roomhub-io/go-booking-client/token/repofake"
	"github.com/stretchr/testify/require"
)

func newBookingClient(t *testing.T, handler http.Handler) (*booking.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	vault, err := token.NewVault(faketokenrepo.NewFakeTokenRepo())
	require.NoError(t, err)
	require.NoError(t, vault.Set(token.Pair{AccessToken: "T1", RefreshToken: "R1"}))

	gw, err := gateway.New(srv.URL, vault)
	require.NoError(t, err)
	return booking.NewClient(gw), srv
}

func TestDateWireFormat(t *testing.T) {
	d, err := booking.ParseDate("2026-09-14")
	require.NoError(t, err)
	require.Equal(t, "2026-09-14", d.String())

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, `"2026-09-14"`, string(raw))

	var parsed booking.Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	require.Equal(t, d, parsed)

	_, err = booking.ParseDate("14/09/2026")
	require.Error(t, err)
}

func TestNights(t *testing.T) {
	checkIn := booking.NewDate(2026, time.September, 14)
	require.Equal(t, 3, checkIn.Nights(checkIn.AddDays(3)))
	require.Equal(t, 0, checkIn.Nights(checkIn))
	require.Equal(t, -2, checkIn.Nights(checkIn.AddDays(-2)))
}

func TestStayTotal(t *testing.T) {
	rate, err := booking.AmountFromString("119.99")
	require.NoError(t, err)

	checkIn := booking.NewDate(2026, time.September, 14)
	total, err := booking.StayTotal(rate, checkIn, checkIn.AddDays(3), 2)
	require.NoError(t, err)
	require.Equal(t, "719.94", total.String())

	_, err = booking.StayTotal(rate, checkIn, checkIn, 1)
	require.Error(t, err)

	_, err = booking.StayTotal(rate, checkIn, checkIn.AddDays(1), 0)
	require.Error(t, err)
}

func TestAmountMarshalsAsBareNumber(t *testing.T) {
	amount, err := booking.AmountFromString("450.50")
	require.NoError(t, err)

	raw, err := json.Marshal(map[string]any{"total_price": amount})
	require.NoError(t, err)
	require.JSONEq(t, `{"total_price": 450.50}`, string(raw))

	var decoded struct {
		TotalPrice booking.Amount `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"total_price": 450.5}`), &decoded))
	require.Equal(t, "450.5", decoded.TotalPrice.String())
}

func TestSearchPropertiesQueryEncoding(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newBookingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/properties", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(booking.SearchResult{
			Properties: []booking.PropertySummary{{ID: "prop-1", Name: "Harbour View", City: "Lisbon"}},
			Total:      1,
			Limit:      20,
		})
	}))

	checkIn := booking.NewDate(2026, time.September, 14)
	checkOut := checkIn.AddDays(3)
	minPrice, err := booking.AmountFromString("50")
	require.NoError(t, err)

	result, err := client.SearchProperties(context.Background(), booking.SearchParams{
		City:     "Lisbon",
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
		Guests:   2,
		MinPrice: &minPrice,
		Limit:    20,
	})
	require.NoError(t, err)
	require.Len(t, result.Properties, 1)
	require.Equal(t, "Harbour View", result.Properties[0].Name)

	require.Equal(t, []string{"Lisbon"}, gotQuery["city"])
	require.Equal(t, []string{"2026-09-14"}, gotQuery["check_in"])
	require.Equal(t, []string{"2026-09-17"}, gotQuery["check_out"])
	require.Equal(t, []string{"2"}, gotQuery["guests"])
	require.Equal(t, []string{"50"}, gotQuery["min_price"])
	require.Equal(t, []string{"20"}, gotQuery["limit"])
	require.NotContains(t, gotQuery, "offset")
	require.NotContains(t, gotQuery, "property_type")
}

func TestQuote(t *testing.T) {
	client, _ := newBookingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/availability/quote", r.URL.Path)

		var req booking.QuoteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "prop-1", req.PropertyID)
		require.Equal(t, "2026-09-14", req.CheckIn.String())
		require.Equal(t, 2, req.NumRooms)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"available": true, "remaining_rooms": 4, "total_price": 719.94, "currency": "EUR"}`)
	}))

	checkIn := booking.NewDate(2026, time.September, 14)
	quote, err := client.Quote(context.Background(), booking.QuoteRequest{
		PropertyID: "prop-1",
		RoomTypeID: "rt-1",
		RatePlanID: "rp-1",
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDays(3),
		NumRooms:   2,
	})
	require.NoError(t, err)
	require.True(t, quote.Available)
	require.Equal(t, 4, quote.RemainingRooms)
	require.Equal(t, "719.94", quote.TotalPrice.String())
	require.Equal(t, "EUR", quote.Currency)
}

func TestQuoteRejectsInvertedDates(t *testing.T) {
	client, _ := newBookingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should never reach the server")
	}))

	checkIn := booking.NewDate(2026, time.September, 14)
	_, err := client.Quote(context.Background(), booking.QuoteRequest{
		PropertyID: "prop-1",
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDays(-1),
	})
	require.Error(t, err)
}

func TestCreateBookingSendsIdempotencyKey(t *testing.T) {
	keys := map[string]int{}
	client, _ := newBookingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/bookings", r.URL.Path)

		var payload struct {
			booking.Create
			IdempotencyKey string `json:"idempotency_key"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.NotEmpty(t, payload.IdempotencyKey)
		keys[payload.IdempotencyKey]++

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(booking.Booking{
			ID:         "bk-1",
			PropertyID: payload.PropertyID,
			RoomTypeID: payload.RoomTypeID,
			CheckIn:    payload.CheckIn,
			CheckOut:   payload.CheckOut,
			RoomsCount: payload.RoomsCount,
			Status:     booking.StatusPending,
		})
	}))

	checkIn := booking.NewDate(2026, time.September, 14)
	create := booking.Create{
		PropertyID: "prop-1",
		RoomTypeID: "rt-1",
		CheckIn:    checkIn,
		CheckOut:   checkIn.AddDays(3),
		RoomsCount: 1,
		Currency:   "EUR",
	}

	first, err := client.CreateBooking(context.Background(), create)
	require.NoError(t, err)
	require.Equal(t, "bk-1", first.ID)
	require.Equal(t, booking.StatusPending, first.Status)
	require.Equal(t, 3, first.Nights())

	_, err = client.CreateBooking(context.Background(), create)
	require.NoError(t, err)

	// Distinct calls carry distinct keys.
	require.Len(t, keys, 2)
}

func TestBookingLifecycle(t *testing.T) {
	status := booking.StatusConfirmed
	client, _ := newBookingClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/bookings":
			_ = json.NewEncoder(w).Encode([]booking.Booking{{ID: "bk-1", Status: status}})
		case r.Method == http.MethodGet && r.URL.Path == "/bookings/bk-1":
			_ = json.NewEncoder(w).Encode(booking.Booking{ID: "bk-1", Status: status})
		case r.Method == http.MethodPatch && r.URL.Path == "/bookings/bk-1":
			var update booking.Update
			require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
			require.NotNil(t, update.RoomsCount)
			_ = json.NewEncoder(w).Encode(booking.Booking{ID: "bk-1", RoomsCount: *update.RoomsCount, Status: status})
		case r.Method == http.MethodDelete && r.URL.Path == "/bookings/bk-1":
			status = booking.StatusCancelled
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()

	bookings, err := client.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)

	got, err := client.GetBooking(ctx, "bk-1")
	require.NoError(t, err)
	require.Equal(t, "bk-1", got.ID)

	rooms := 2
	updated, err := client.UpdateBooking(ctx, "bk-1", booking.Update{RoomsCount: &rooms})
	require.NoError(t, err)
	require.Equal(t, 2, updated.RoomsCount)

	require.NoError(t, client.CancelBooking(ctx, "bk-1"))

	got, err = client.GetBooking(ctx, "bk-1")
	require.NoError(t, err)
	require.Equal(t, booking.StatusCancelled, got.Status)
}
