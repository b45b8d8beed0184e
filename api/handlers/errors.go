// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	stderrors "errors"

	"digests-reader/core/errors"
	"github.com/danielgtaylor/huma/v2"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors.
// Feed failures carry the same user-facing text the reader shows.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())

	case errors.IsValidation(err):
		return huma.Error400BadRequest(err.Error())

	case stderrors.Is(err, errors.ErrNothingSelected):
		return huma.Error409Conflict(err.Error())

	case stderrors.Is(err, errors.ErrNoSourceSelected):
		return huma.Error409Conflict(errors.UserMessage(err))

	case errors.IsRssParsing(err), errors.IsExtraction(err):
		return huma.Error422UnprocessableEntity(errors.UserMessage(err))

	case errors.IsNetwork(err):
		return huma.Error502BadGateway(errors.UserMessage(err))

	case errors.IsCatalogLoad(err):
		return huma.Error503ServiceUnavailable("Source catalog unavailable", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
