package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for making HTTP requests.
// The feed service only ever reads, so a GET is all it needs; tests swap in
// a function-backed mock.
type HTTPClient interface {
	// Get performs an HTTP GET request to the specified URL.
	// Transport failures are returned as errors; non-2xx responses are not.
	Get(ctx context.Context, url string) (Response, error)
}

// Response defines the interface for HTTP responses.
type Response interface {
	// StatusCode returns the HTTP status code of the response.
	StatusCode() int

	// Body returns the response body as an io.ReadCloser.
	// The caller is responsible for closing the body when done.
	Body() io.ReadCloser

	// Header returns the value of the specified header (case-insensitive).
	Header(key string) string
}
