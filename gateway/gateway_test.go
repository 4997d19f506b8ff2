package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/roomhub-io/go-booking-client/gateway"
	"github.com/roomhub-io/go-booking-client/token"
	faketokenrepo "github.com/roomhub-io/go-booking-client/token/repofake"
	"github.com/stretchr/testify/require"
)

func newVault(t *testing.T, pair *token.Pair) *token.Vault {
	t.Helper()
	vault, err := token.NewVault(faketokenrepo.NewFakeTokenRepo())
	require.NoError(t, err)
	if pair != nil {
		require.NoError(t, vault.Set(*pair))
	}
	return vault
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestBearerAttachedWhenTokenHeld(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}))
	defer srv.Close()

	vault := newVault(t, &token.Pair{AccessToken: "T1", RefreshToken: "R1"})
	client, err := gateway.New(srv.URL, vault)
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/users/me", nil))
	require.Equal(t, "Bearer T1", gotAuth)
}

func TestUnauthenticatedWhenNoTokenHeld(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]any{"items": []any{}})
	}))
	defer srv.Close()

	client, err := gateway.New(srv.URL, newVault(t, nil))
	require.NoError(t, err)

	require.NoError(t, client.Get(context.Background(), "/search/properties", nil))
	require.Empty(t, gotAuth)
}

func TestAPIErrorMessageExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/plain":
			writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Property not found"})
		case "/validation":
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"detail": []map[string]any{{"msg": "check_out must be after check_in"}},
			})
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client, err := gateway.New(srv.URL, newVault(t, nil))
	require.NoError(t, err)

	err = client.Get(context.Background(), "/plain", nil)
	require.True(t, gateway.IsStatus(err, http.StatusNotFound))
	require.Contains(t, err.Error(), "Property not found")

	err = client.Get(context.Background(), "/validation", nil)
	require.True(t, gateway.IsStatus(err, http.StatusUnprocessableEntity))
	require.Contains(t, err.Error(), "check_out must be after check_in")

	err = client.Get(context.Background(), "/boom", nil)
	require.True(t, gateway.IsStatus(err, http.StatusInternalServerError))
	require.Contains(t, err.Error(), "Internal Server Error")
}

// Scenario from the auth contract: an authenticated request hits a 401, the
// refresh endpoint issues T2/R2, and the original request is replayed once
// with "Authorization: Bearer T2".
func TestExpiredTokenRefreshedAndReplayed(t *testing.T) {
	var refreshCalls, protectedCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.Equal(t, "R1", req["refresh_token"])
			require.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]any{"access_token": "T2", "refresh_token": "R2"})
		case "/users/me":
			atomic.AddInt32(&protectedCalls, 1)
			if r.Header.Get("Authorization") != "Bearer T2" {
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"email": "a@x.com"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	vault := newVault(t, &token.Pair{AccessToken: "T1", RefreshToken: "R1"})
	client, err := gateway.New(srv.URL, vault)
	require.NoError(t, err)

	var out struct {
		Email string `json:"email"`
	}
	require.NoError(t, client.Get(context.Background(), "/users/me", &out))
	require.Equal(t, "a@x.com", out.Email)
	require.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))
	require.EqualValues(t, 2, atomic.LoadInt32(&protectedCalls))

	pair, ok := vault.Current()
	require.True(t, ok)
	require.Equal(t, "T2", pair.AccessToken)
	require.Equal(t, "R2", pair.RefreshToken)
}

// N concurrent requests each receiving a 401 must join a single refresh
// flight: exactly one /auth/refresh call, every request replayed with the
// same refreshed token.
func TestConcurrent401sShareOneRefresh(t *testing.T) {
	const workers = 8

	var refreshCalls, unauthorized int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			// Hold the flight open until every worker has taken its 401 and
			// joined, so a late worker cannot start a second flight.
			deadline := time.Now().Add(5 * time.Second)
			for atomic.LoadInt32(&unauthorized) < workers && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			time.Sleep(250 * time.Millisecond)
			writeJSON(w, http.StatusOK, map[string]any{"access_token": "T2", "refresh_token": "R2"})
		case "/bookings":
			if r.Header.Get("Authorization") != "Bearer T2" {
				atomic.AddInt32(&unauthorized, 1)
				writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
				return
			}
			writeJSON(w, http.StatusOK, []any{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	vault := newVault(t, &token.Pair{AccessToken: "T1", RefreshToken: "R1"})
	client, err := gateway.New(srv.URL, vault)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), "/bookings", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoErrorf(t, err, "worker %d", i)
	}
	require.EqualValues(t, 1, atomic.LoadInt32(&refreshCalls))
}

// A failed refresh rejects every waiter, clears the vault, and fires the
// session-expired handler exactly once.
func TestRefreshFailureInvalidatesOnce(t *testing.T) {
	const workers = 6

	var unauthorized int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			deadline := time.Now().Add(5 * time.Second)
			for atomic.LoadInt32(&unauthorized) < workers && time.Now().Before(deadline) {
				time.Sleep(time.Millisecond)
			}
			time.Sleep(250 * time.Millisecond)
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid token"})
		default:
			atomic.AddInt32(&unauthorized, 1)
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
		}
	}))
	defer srv.Close()

	vault := newVault(t, &token.Pair{AccessToken: "T1", RefreshToken: "R1"})
	client, err := gateway.New(srv.URL, vault)
	require.NoError(t, err)

	var expiredCalls int32
	client.HandleSessionExpired(func() { atomic.AddInt32(&expiredCalls, 1) })

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), "/organizations", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.ErrorIsf(t, err, gateway.ErrSessionExpired, "worker %d", i)
	}
	require.EqualValues(t, 1, atomic.LoadInt32(&expiredCalls))

	_, ok := vault.Access()
	require.False(t, ok)
	_, ok = vault.RefreshToken()
	require.False(t, ok)
}

// Auth endpoints never enter the refresh-and-replay path: a 401 from the
// credential endpoint is a credential error, full stop.
func TestLoginNeverTriggersRefresh(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			atomic.AddInt32(&refreshCalls, 1)
			writeJSON(w, http.StatusOK, map[string]any{"access_token": "T2", "refresh_token": "R2"})
		case "/auth/login":
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid credentials"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	vault := newVault(t, &token.Pair{AccessToken: "T1", RefreshToken: "R1"})
	client, err := gateway.New(srv.URL, vault)
	require.NoError(t, err)

	_, err = client.LoginCredentials(context.Background(), "a@x.com", "wrong")
	require.True(t, gateway.IsUnauthorized(err))
	require.Contains(t, err.Error(), "Invalid credentials")
	require.EqualValues(t, 0, atomic.LoadInt32(&refreshCalls))
}

func TestNo401RecoveryWithoutRefreshToken(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh" {
			atomic.AddInt32(&refreshCalls, 1)
		}
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Not authenticated"})
	}))
	defer srv.Close()

	client, err := gateway.New(srv.URL, newVault(t, nil))
	require.NoError(t, err)

	err = client.Get(context.Background(), "/users/me", nil)
	require.True(t, gateway.IsUnauthorized(err))
	require.EqualValues(t, 0, atomic.LoadInt32(&refreshCalls))
}

func TestNetworkErrorsSurfaceWithoutRetry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	vault := newVault(t, &token.Pair{AccessToken: "T1", RefreshToken: "R1"})
	client, err := gateway.New(srv.URL, vault, gateway.WithTimeout(time.Second))
	require.NoError(t, err)

	err = client.Get(context.Background(), "/users/me", nil)
	require.Error(t, err)
	require.False(t, gateway.IsUnauthorized(err))

	// tokens stay put: network trouble is not an auth failure
	_, ok := vault.Access()
	require.True(t, ok)
}

func TestLoginOTPRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "a@x.com", r.PostForm.Get("username"))
		require.Equal(t, "secret", r.PostForm.Get("password"))
		writeJSON(w, http.StatusOK, map[string]any{"otp_required": true, "email": "a@x.com"})
	}))
	defer srv.Close()

	client, err := gateway.New(srv.URL, newVault(t, nil))
	require.NoError(t, err)

	result, err := client.LoginCredentials(context.Background(), "a@x.com", "secret")
	require.NoError(t, err)
	require.True(t, result.OTPRequired)
	require.Equal(t, "a@x.com", result.Email)
	require.Empty(t, result.AccessToken)
}
