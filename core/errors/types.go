// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates catalog, feed parsing, network and selection failures for the UI layer

package errors

import (
	"errors"
	"fmt"
)

// GenericNetworkMessage is shown to users for any fetch failure that is not a
// feed parsing problem.
const GenericNetworkMessage = "Network problem, please try again later."

// ArticleUnreadableMessage is shown when an item's page has no readable article
const ArticleUnreadableMessage = "This article could not be displayed."

var (
	// ErrNothingSelected is returned when saving a selection while no source is selected
	ErrNothingSelected = errors.New("cannot save, no source selected")

	// ErrNoSourceSelected is delivered when a feed load is triggered before any source was saved
	ErrNoSourceSelected = errors.New("no feed source selected")
)

// CatalogLoadError means the bundled source catalog is missing or malformed
type CatalogLoadError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("failed to load source catalog %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause
func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

// RssParsingError means the feed was downloaded but its content could not be parsed
type RssParsingError struct {
	URL         string
	Description string
	Err         error
}

// Error implements the error interface
func (e *RssParsingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", e.Description, e.URL, e.Err)
	}
	return fmt.Sprintf("%s (%s)", e.Description, e.URL)
}

// Unwrap returns the underlying cause
func (e *RssParsingError) Unwrap() error {
	return e.Err
}

// NetworkError represents any transport level failure while fetching a feed
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error fetching %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("network error fetching %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExtractionError means a page was downloaded but no readable article was found in it
type ExtractionError struct {
	URL string
	Err error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("no readable article at %s", e.URL)
	}
	return fmt.Sprintf("no readable article at %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsCatalogLoad checks if an error is a CatalogLoadError
func IsCatalogLoad(err error) bool {
	var catalogErr *CatalogLoadError
	return errors.As(err, &catalogErr)
}

// IsRssParsing checks if an error is an RssParsingError
func IsRssParsing(err error) bool {
	var parsingErr *RssParsingError
	return errors.As(err, &parsingErr)
}

// IsNetwork checks if an error is a NetworkError
func IsNetwork(err error) bool {
	var networkErr *NetworkError
	return errors.As(err, &networkErr)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// UserMessage returns the text the UI should show for a fetch error.
// Parsing errors carry their own description; everything else is reported
// with a generic network message.
func UserMessage(err error) string {
	var parsingErr *RssParsingError
	if errors.As(err, &parsingErr) {
		return parsingErr.Description
	}
	if errors.Is(err, ErrNoSourceSelected) {
		return "Select a feed source first."
	}
	if IsExtraction(err) {
		return ArticleUnreadableMessage
	}
	return GenericNetworkMessage
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
