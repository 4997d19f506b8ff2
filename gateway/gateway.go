// Package gateway is the single transport boundary between the SDK and the
// booking backend. Every outgoing request passes through here so bearer
// credentials, 401 recovery and error mapping live in one place.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/roomhub-io/go-booking-client/internal/metrics"
	"github.com/roomhub-io/go-booking-client/token"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"

	defaultTimeout = 30 * time.Second
)

// authPaths never trigger the refresh-and-replay path: a 401 from any of
// them is a definitive answer, not an expired access token.
var authPaths = map[string]struct{}{
	loginPath:      {},
	confirmOTPPath: {},
	refreshPath:    {},
	logoutPath:     {},
}

// Client talks to the booking backend. It attaches the current access token
// to every request, silently refreshes it once on a 401 and replays the
// original request, and maps error bodies to APIError values.
type Client struct {
	baseURL string
	httpc   *http.Client
	vault   *token.Vault
	log     zerolog.Logger

	// refreshGroup serializes token refreshes: concurrent 401s join the one
	// in-flight /auth/refresh call instead of issuing duplicates.
	refreshGroup singleflight.Group

	onSessionExpired func()
}

// Option modifies the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger sets the structured logger used for transport-level events.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTimeout sets the per-request timeout on the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpc.Timeout = d
	}
}

// New creates a gateway client for the backend at baseURL. The vault supplies
// and persists the bearer credentials.
func New(baseURL string, vault *token.Vault, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[gateway.New] baseURL is required")
	}
	if vault == nil {
		return nil, errors.New("[gateway.New] vault is required")
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		vault:   vault,
		log:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// HandleSessionExpired registers the handler invoked exactly once per
// unrecoverable authorization failure, after tokens have been cleared. The
// session store uses it to fall back to anonymous; applications typically
// chain a navigation to their login entry point.
func (c *Client) HandleSessionExpired(handler func()) {
	c.onSessionExpired = handler
}

// Vault exposes the token vault shared with the session store.
func (c *Client) Vault() *token.Vault {
	return c.vault
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, "", nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return errors.Wrap(err, "[Client.Post] marshalBody")
	}
	return c.call(ctx, http.MethodPost, path, contentTypeJSON, payload, out)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	payload, err := marshalBody(body)
	if err != nil {
		return errors.Wrap(err, "[Client.Patch] marshalBody")
	}
	return c.call(ctx, http.MethodPatch, path, contentTypeJSON, payload, out)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, "", nil, nil)
}

// PostForm performs a POST request with a form-encoded body. The credential
// endpoint is the only consumer.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.call(ctx, http.MethodPost, path, contentTypeForm, []byte(form.Encode()), out)
}

// call runs one request through the full interceptor chain: bearer attach,
// single 401-triggered refresh-and-replay, then error mapping. Request bodies
// are buffered up front so the replay resubmits identical bytes.
func (c *Client) call(ctx context.Context, method, path, contentType string, payload []byte, out any) error {
	bearer, _ := c.vault.Access()
	resp, body, err := c.send(ctx, method, path, contentType, payload, bearer)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.shouldRefresh(path) {
		access, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			return refreshErr
		}
		c.log.Debug().Str("method", method).Str("path", path).Msg("replaying request with refreshed token")
		resp, body, err = c.send(ctx, method, path, contentType, payload, access)
		if err != nil {
			return err
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return apiErrorFrom(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrapf(err, "[Client.call] decode %s %s response", method, path)
	}
	return nil
}

// shouldRefresh gates the replay path: never for auth endpoints, never
// without a refresh token to spend.
func (c *Client) shouldRefresh(path string) bool {
	if _, ok := authPaths[path]; ok {
		return false
	}
	_, ok := c.vault.RefreshToken()
	return ok
}

// send performs a single HTTP round trip. Network failures surface as-is to
// the caller; there is no retry here beyond what call arranges.
func (c *Client) send(ctx context.Context, method, path, contentType string, payload []byte, bearer string) (*http.Response, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[Client.send] build %s %s", method, path)
	}
	req.Header.Set("Accept", contentTypeJSON)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[Client.send] %s %s", method, path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "[Client.send] read %s %s response", method, path)
	}

	metrics.ObserveRequest(method, resp.StatusCode)
	return resp, body, nil
}

func marshalBody(body any) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	return json.Marshal(body)
}
