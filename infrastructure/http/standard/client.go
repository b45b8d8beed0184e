// ABOUTME: Standard HTTP client implementation with retry logic and timeout support
// ABOUTME: Retries transport failures and 5xx responses with exponential backoff

package standard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"digests-reader/core/interfaces"
	"github.com/cenkalti/backoff/v4"
)

const (
	maxRetries = 3
	userAgent  = "DigestsReader/1.0"

	// maxErrorBody caps how much of a 5xx body is kept for the final response
	maxErrorBody = 64 << 10
)

// Option configures a StandardHTTPClient
type Option func(*StandardHTTPClient)

// WithLogger logs each retry
func WithLogger(logger interfaces.Logger) Option {
	return func(c *StandardHTTPClient) {
		c.logger = logger
	}
}

// WithInitialInterval sets the first retry delay
func WithInitialInterval(d time.Duration) Option {
	return func(c *StandardHTTPClient) {
		c.initialInterval = d
	}
}

// StandardHTTPClient implements the HTTPClient interface on net/http
type StandardHTTPClient struct {
	client          *http.Client
	logger          interfaces.Logger
	initialInterval time.Duration
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration, opts ...Option) *StandardHTTPClient {
	c := &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		logger:          interfaces.NopLogger{},
		initialInterval: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *StandardHTTPClient) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, maxRetries-1), ctx)
}

// Get performs an HTTP GET request. Transport errors and 5xx responses are
// retried; once retries run out the last 5xx response is returned as is.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5")

	var (
		result   *httpResponse
		lastFail *httpResponse
	)

	operation := func() error {
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}

		if resp.StatusCode < 500 {
			result = &httpResponse{statusCode: resp.StatusCode, body: resp.Body, headers: resp.Header}
			return nil
		}

		// Buffer the body so the final failed response can still be returned
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		lastFail = &httpResponse{
			statusCode: resp.StatusCode,
			body:       io.NopCloser(bytes.NewReader(body)),
			headers:    resp.Header,
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Debug("Retrying request", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
			"wait":  wait.String(),
		})
	}

	err = backoff.RetryNotify(operation, c.newBackOff(ctx), notify)
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if lastFail != nil {
		return lastFail, nil
	}
	return nil, err
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
