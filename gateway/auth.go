package gateway

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/roomhub-io/go-booking-client/token"
)

const (
	loginPath      = "/auth/login"
	confirmOTPPath = "/auth/confirm-login-otp"
	refreshPath    = "/auth/refresh"
	logoutPath     = "/auth/logout"
)

// LoginResult is the credential endpoint's response. Either the server asks
// for a second factor (OTPRequired with no tokens) or it issues a full token
// pair straight away.
type LoginResult struct {
	OTPRequired bool   `json:"otp_required"`
	Email       string `json:"email"`
	token.Response
}

type confirmOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LoginCredentials exchanges an email/password pair for either a token pair
// or an OTP challenge. Invalid credentials come back as a 401 APIError; the
// caller owns surfacing the message.
func (c *Client) LoginCredentials(ctx context.Context, email, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var result LoginResult
	if err := c.PostForm(ctx, loginPath, form, &result); err != nil {
		return nil, errors.Wrap(err, "[Client.LoginCredentials]")
	}
	return &result, nil
}

// ConfirmLoginOTP completes a pending second-factor challenge.
func (c *Client) ConfirmLoginOTP(ctx context.Context, email, code string) (*token.Response, error) {
	var result token.Response
	if err := c.Post(ctx, confirmOTPPath, confirmOTPRequest{Email: email, Code: code}, &result); err != nil {
		return nil, errors.Wrap(err, "[Client.ConfirmLoginOTP]")
	}
	return &result, nil
}

// Logout asks the server to invalidate the held refresh token. It is a plain
// call: the session store decides that failures are non-fatal.
func (c *Client) Logout(ctx context.Context) error {
	refreshToken, ok := c.vault.RefreshToken()
	if !ok {
		return nil
	}
	if err := c.Post(ctx, logoutPath, logoutRequest{RefreshToken: refreshToken}, nil); err != nil {
		return errors.Wrap(err, "[Client.Logout]")
	}
	return nil
}
