package devmate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the root of the DevMate public API
	DefaultBaseURL = "https://public-api.devmate.com"
	// DefaultTimeout bounds a single request
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent unless WithUserAgent overrides it
	DefaultUserAgent = "devmate-go"
)

// Client represents a DevMate API client
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
	ownsHTTP   bool
	logger     zerolog.Logger
	closeOnce  sync.Once
}

// NewClient creates a new DevMate client authenticated with token
func NewClient(token string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidConfig)
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if options.baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(options.baseURL); err != nil {
		return nil, fmt.Errorf("%w: base URL: %w", ErrInvalidConfig, err)
	}

	httpClient := options.httpClient
	ownsHTTP := httpClient == nil
	if ownsHTTP {
		httpClient = &http.Client{Timeout: options.timeout}
		if !options.followRedirects {
			httpClient.CheckRedirect = func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			}
		}
	}

	return &Client{
		baseURL:    options.baseURL,
		token:      token,
		userAgent:  options.userAgent,
		httpClient: httpClient,
		ownsHTTP:   ownsHTTP,
		logger:     logger,
	}, nil
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases pooled connections. Calling it again is a no-op. A client
// passed in with WithHTTPClient belongs to the caller and is left open
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		if c.ownsHTTP {
			c.httpClient.CloseIdleConnections()
		}
	})
	return nil
}

// url joins the API root and an absolute path
func (c *Client) url(path string) string {
	return c.baseURL + path
}

// requestEnvelope wraps every request payload
type requestEnvelope struct {
	Data any `json:"data"`
}

// newRequest builds an authenticated request. A non-nil body is sent as
// {"data": body}
func (c *Client) newRequest(ctx context.Context, method, path string, body any, params url.Values) (*http.Request, error) {
	requestURL := c.url(path)
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	headers := http.Header{}
	headers.Set("Accept", contentTypeJSON)
	if c.userAgent != "" {
		headers.Set("User-Agent", c.userAgent)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(requestEnvelope{Data: body})
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		headers.Set("Content-Type", contentTypeJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = mergeAuth(headers, c.token)

	return req, nil
}

// do performs a request, classifies the status and interprets the body.
// Transport failures are returned wrapped, never retried
func (c *Client) do(ctx context.Context, method, path string, body any, params url.Values) (*Payload, error) {
	req, err := c.newRequest(ctx, method, path, body, params)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("DevMate API request")

	if err := checkResponse(resp.StatusCode, raw); err != nil {
		return nil, err
	}

	return extractPayload(resp.Header, raw), nil
}
