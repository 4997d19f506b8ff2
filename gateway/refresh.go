package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/roomhub-io/go-booking-client/internal/metrics"
	"github.com/roomhub-io/go-booking-client/token"
)

const refreshFlightKey = "token-refresh"

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refreshAccessToken runs the refresh protocol. All concurrent callers join
// the same in-flight /auth/refresh call and are released together with the
// new access token. On failure the vault is cleared and the session-expired
// handler fires exactly once, inside the shared flight.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	metrics.RefreshWaiterAdd(1)
	defer metrics.RefreshWaiterAdd(-1)

	v, err, _ := c.refreshGroup.Do(refreshFlightKey, func() (any, error) {
		refreshToken, ok := c.vault.RefreshToken()
		if !ok {
			return nil, c.expireSession("no refresh token held")
		}

		payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
		if err != nil {
			return nil, errors.Wrap(err, "[Client.refreshAccessToken] json.Marshal")
		}

		// The refresh call itself goes out unauthenticated; sending a stale
		// bearer here would only invite another 401.
		resp, body, err := c.send(ctx, http.MethodPost, refreshPath, contentTypeJSON, payload, "")
		if err != nil {
			metrics.ObserveRefresh("network_error")
			c.log.Warn().Err(err).Msg("token refresh failed")
			return nil, c.expireSession("refresh call failed")
		}
		if resp.StatusCode >= http.StatusBadRequest {
			metrics.ObserveRefresh("rejected")
			c.log.Warn().Int("status", resp.StatusCode).Msg("token refresh rejected")
			return nil, c.expireSession("refresh token rejected")
		}

		var tokenResp token.Response
		if err := json.Unmarshal(body, &tokenResp); err != nil || tokenResp.AccessToken == "" {
			metrics.ObserveRefresh("bad_response")
			return nil, c.expireSession("unusable refresh response")
		}

		if err := c.vault.Set(tokenResp.Pair()); err != nil {
			return nil, errors.Wrap(err, "[Client.refreshAccessToken] vault.Set")
		}

		metrics.ObserveRefresh("success")
		c.log.Debug().Msg("access token refreshed")
		return tokenResp.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// expireSession clears credentials and notifies the registered handler. It
// only runs inside the refresh flight, so concurrent 401s produce a single
// invalidation rather than a redirect loop.
func (c *Client) expireSession(reason string) error {
	if err := c.vault.Clear(); err != nil {
		c.log.Error().Err(err).Msg("clearing token vault after expiry")
	}
	c.log.Info().Str("reason", reason).Msg("session expired")
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return errors.Wrap(ErrSessionExpired, reason)
}
