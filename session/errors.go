package session

import "github.com/pkg/errors"

var (
	// ErrNotAuthenticated is returned by actions that require an
	// authenticated session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoPendingOTP is returned by ConfirmOTP outside the otp_pending
	// state.
	ErrNoPendingOTP = errors.New("no pending OTP challenge")
)
