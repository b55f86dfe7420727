package devmate

import (
	"net/http"
	"strings"
	"time"
)

// Option configures a Client
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client
type clientOptions struct {
	baseURL         string
	timeout         time.Duration
	userAgent       string
	httpClient      *http.Client
	followRedirects bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
}

// WithBaseURL points the client at another API root, e.g. a test server
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithUserAgent sets a custom user agent string
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithHTTPClient uses the given HTTP client as is. Timeout and redirect
// options are not applied to it
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithFollowRedirects lets the transport follow 3xx responses instead of
// reporting them as ErrRequest
func WithFollowRedirects() Option {
	return func(o *clientOptions) {
		o.followRedirects = true
	}
}
