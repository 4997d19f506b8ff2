package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrSessionExpired is returned once the refresh protocol has given up:
// tokens are already cleared and the session-expired handler has fired.
var ErrSessionExpired = errors.New("session expired")

// APIError is a non-2xx response from the booking backend, surfaced to the
// caller unmodified apart from extracting the human-readable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == statusCode
	}
	return false
}

// IsUnauthorized reports whether err is a 401 APIError.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// errorBody matches the backend's error envelope. detail is usually a plain
// string; validation failures send a list of objects with a msg field.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func apiErrorFrom(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Message: http.StatusText(statusCode)}
	if len(body) == 0 {
		return apiErr
	}
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return apiErr
	}
	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil && msg != "" {
		apiErr.Message = msg
		return apiErr
	}
	var validation []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &validation); err == nil && len(validation) > 0 && validation[0].Msg != "" {
		apiErr.Message = validation[0].Msg
	}
	return apiErr
}
