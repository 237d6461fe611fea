package contextio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Client is a signed Context.IO API client.
//
// Calls are synchronous. The settings and the last-response cache are
// guarded by a mutex, so a Client may be shared, but LastResponse then
// reports whichever call finished last.
type Client struct {
	signer    *Signer
	transport *Transport
	userAgent string
	logger    zerolog.Logger

	mu       sync.RWMutex
	settings Settings
	last     *Response
}

// NewClient creates a new Context.IO client. It fails with
// ErrMissingCredentials when either credential is empty and performs no
// network I/O.
func NewClient(consumerKey, consumerSecret string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	signer, err := NewSigner(consumerKey, consumerSecret)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.now != nil {
		signer.now = o.now
	}
	if o.nonce != nil {
		signer.nonce = o.nonce
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = newHTTPClient(o.timeout, o.insecureSkipVerify)
	}

	return &Client{
		signer:    signer,
		transport: NewTransport(httpClient),
		userAgent: o.userAgent,
		logger:    logger,
		settings:  o.settings,
	}, nil
}

// SetSSL selects https (true) or http (false) for subsequent calls.
func (c *Client) SetSSL(on bool) {
	c.mu.Lock()
	c.settings.UseSSL = on
	c.mu.Unlock()
}

// SetAPIVersion sets the API version for subsequent calls.
func (c *Client) SetAPIVersion(version string) {
	c.mu.Lock()
	c.settings.APIVersion = version
	c.mu.Unlock()
}

// UseAuthorizationHeaders chooses between the Authorization header (true)
// and query-string OAuth parameters (false).
func (c *Client) UseAuthorizationHeaders(on bool) {
	c.mu.Lock()
	c.settings.UseAuthorizationHeader = on
	c.mu.Unlock()
}

// SaveHeaders toggles raw header capture.
func (c *Client) SaveHeaders(on bool) {
	c.mu.Lock()
	c.settings.CaptureHeaders = on
	c.mu.Unlock()
}

// Settings returns a copy of the current settings.
func (c *Client) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// LastResponse returns the Response of the most recent call, or nil.
func (c *Client) LastResponse() *Response {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// URL returns the unsigned URL for action under the current settings.
func (c *Client) URL(action string) string {
	return buildURL(c.Settings(), action)
}

func buildURL(s Settings, action string) string {
	scheme := "http"
	if s.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.EndpointHost, s.APIVersion, strings.TrimLeft(action, "/"))
}

// Call invokes ep for a single account. account is ignored for endpoints
// without account scope. On a classified error both the Response and its
// error are returned; on a transport failure the Response is nil.
func (c *Client) Call(ctx context.Context, ep Endpoint, account string, params Params) (*Response, error) {
	d, ok := Lookup(ep)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, ep)
	}
	if !d.AccountScoped {
		account = ""
	}
	return c.do(ctx, d, account, params)
}

// Batch invokes ep once per account, sequentially and in order. The first
// failure aborts the batch: remaining accounts are not called and no
// partial results are returned.
func (c *Client) Batch(ctx context.Context, ep Endpoint, accounts []string, params Params) (map[string]*Response, error) {
	d, ok := Lookup(ep)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, ep)
	}
	if !d.AccountScoped || d.Method != http.MethodGet || ep == DownloadFile {
		return nil, fmt.Errorf("%w: %s", ErrNotBatchable, ep)
	}

	results := make(map[string]*Response, len(accounts))
	for i, account := range accounts {
		resp, err := c.do(ctx, d, account, params)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("endpoint", string(ep)).
				Str("account", account).
				Int("index", i).
				Msg("Batch aborted")
			return nil, &BatchError{Account: account, Index: i, Err: err}
		}
		results[account] = resp
	}
	return results, nil
}

// do is the single perform-call primitive behind every JSON endpoint.
func (c *Client) do(ctx context.Context, d Descriptor, account string, params Params) (*Response, error) {
	settings := c.Settings()

	req, err := c.buildRequest(ctx, settings, d, account, params)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("method", d.Method).
		Str("action", d.Action).
		Str("account", account).
		Bool("auth_header", settings.UseAuthorizationHeader).
		Msg("Making Context.IO API request")

	raw, err := c.transport.Do(req, settings.CaptureHeaders)
	if err != nil {
		c.logger.Error().Err(err).Str("action", d.Action).Msg("Context.IO request failed")
		return nil, err
	}

	resp := NewResponse(*raw)
	c.mu.Lock()
	c.last = resp
	c.mu.Unlock()

	if resp.HasError() {
		c.logger.Debug().
			Str("action", d.Action).
			Int("status", resp.HTTPCode()).
			Str("kind", resp.ErrorKind().String()).
			Msg("Context.IO API returned an error")
		return resp, resp.Err()
	}

	c.logger.Debug().
		Str("action", d.Action).
		Int("status", resp.HTTPCode()).
		Int("bytes", len(resp.RawBody())).
		Msg("Context.IO API request succeeded")
	return resp, nil
}

// Download streams the body of a DownloadFile call into w. It signs and
// transmits exactly like Call but never decodes the body and does not
// touch LastResponse.
func (c *Client) Download(ctx context.Context, account string, params Params, w io.Writer) (int64, error) {
	d, _ := Lookup(DownloadFile)
	req, err := c.buildRequest(ctx, c.Settings(), d, account, params)
	if err != nil {
		return 0, err
	}

	n, err := c.transport.Stream(req, w)
	if err != nil {
		c.logger.Error().Err(err).Str("account", account).Msg("File download failed")
		return n, err
	}

	c.logger.Debug().Str("account", account).Int64("bytes", n).Msg("Downloaded file")
	return n, nil
}

// buildRequest prepares, signs and encodes one call.
func (c *Client) buildRequest(ctx context.Context, s Settings, d Descriptor, account string, params Params) (*http.Request, error) {
	prepared, err := d.prepare(account, params)
	if err != nil {
		return nil, err
	}

	baseURL := buildURL(s, d.Action)
	signed, err := c.signer.Sign(d.Method, baseURL, prepared)
	if err != nil {
		return nil, err
	}

	var req *http.Request
	switch {
	case d.Method == http.MethodPost:
		body := signed.Params
		if !s.UseAuthorizationHeader {
			body = body.Merge(signed.OAuth)
		}
		req, err = newRequest(ctx, d.Method, baseURL, strings.NewReader(body.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	case s.UseAuthorizationHeader:
		req, err = newRequest(ctx, d.Method, signed.CallURL(), nil)
	default:
		req, err = newRequest(ctx, d.Method, signed.URL(), nil)
	}
	if err != nil {
		return nil, err
	}

	if s.UseAuthorizationHeader {
		req.Header.Set("Authorization", signed.AuthorizationHeader())
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}
