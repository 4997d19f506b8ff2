package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Pair is the bearer credential pair issued by the booking backend. The
// access token is a short-lived JWT; the refresh token is longer-lived and
// only ever sent to /auth/refresh and /auth/logout.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Response is the wire shape of /auth/login, /auth/confirm-login-otp and
// /auth/refresh responses.
type Response struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	Role         string `json:"role,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty"`
}

// Pair extracts the credential pair from a token response.
func (r Response) Pair() Pair {
	return Pair{AccessToken: r.AccessToken, RefreshToken: r.RefreshToken}
}

// ExpiresWithin reports whether the access token's exp claim falls inside the
// given window. The claim is read without signature verification: the client
// holds no signing key, and the peek is only used to decide whether a
// proactive refresh is worthwhile. The server remains the authority; an
// unreadable token is treated as expiring.
func (p Pair) ExpiresWithin(window time.Duration) bool {
	if p.AccessToken == "" {
		return true
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(p.AccessToken, jwt.MapClaims{})
	if err != nil {
		return true
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return NowTimeFunc().Add(window).After(exp.Time)
}
