package contextio

import (
	"net/http"
	"time"
)

const (
	DefaultEndpoint   = "api.context.io"
	DefaultAPIVersion = "1.1"
)

// Settings governs how every call is built.
type Settings struct {
	UseSSL                 bool
	EndpointHost           string
	APIVersion             string
	UseAuthorizationHeader bool
	CaptureHeaders         bool
}

// DefaultSettings returns HTTPS against the public endpoint, query-string
// signing and no header capture.
func DefaultSettings() Settings {
	return Settings{
		UseSSL:       true,
		EndpointHost: DefaultEndpoint,
		APIVersion:   DefaultAPIVersion,
	}
}

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	settings           Settings
	timeout            time.Duration
	insecureSkipVerify bool
	httpClient         *http.Client
	userAgent          string
	now                func() time.Time
	nonce              func() string
}

func defaultOptions() clientOptions {
	return clientOptions{
		settings: DefaultSettings(),
		timeout:  defaultTimeout,
	}
}

// WithEndpoint sets the API host.
func WithEndpoint(host string) Option {
	return func(o *clientOptions) {
		if host != "" {
			o.settings.EndpointHost = host
		}
	}
}

// WithAPIVersion sets the API version path segment.
func WithAPIVersion(version string) Option {
	return func(o *clientOptions) {
		if version != "" {
			o.settings.APIVersion = version
		}
	}
}

// WithSSL selects https (true) or http (false).
func WithSSL(on bool) Option {
	return func(o *clientOptions) {
		o.settings.UseSSL = on
	}
}

// WithAuthorizationHeader sends OAuth parameters in an Authorization header
// instead of the query string.
func WithAuthorizationHeader(on bool) Option {
	return func(o *clientOptions) {
		o.settings.UseAuthorizationHeader = on
	}
}

// WithHeaderCapture records raw request and response headers on every
// Response.
func WithHeaderCapture(on bool) Option {
	return func(o *clientOptions) {
		o.settings.CaptureHeaders = on
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithInsecureSkipVerify disables certificate verification.
// Use with caution and only for development/testing.
func WithInsecureSkipVerify(skip bool) Option {
	return func(o *clientOptions) {
		o.insecureSkipVerify = skip
	}
}

// WithHTTPClient uses a custom HTTP client. Timeout and TLS options are
// then the caller's responsibility.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithClock overrides the signing clock.
func WithClock(now func() time.Time) Option {
	return func(o *clientOptions) {
		o.now = now
	}
}

// WithNonceSource overrides nonce generation.
func WithNonceSource(nonce func() string) Option {
	return func(o *clientOptions) {
		o.nonce = nonce
	}
}
