// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts engine and library errors to appropriate HTTP responses

package handlers

import (
	"github.com/danielgtaylor/huma/v2"

	"linkoff-engine/core/errors"
	"linkoff-engine/linkoff"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.IsValidation(err) || linkoff.IsValidationError(err):
		return huma.Error400BadRequest(err.Error())
	case errors.IsNotFound(err):
		return huma.Error404NotFound(err.Error())
	case errors.IsWrongPage(err):
		return huma.Error409Conflict(err.Error())
	case linkoff.IsParsingError(err):
		return huma.Error422UnprocessableEntity(err.Error())
	case linkoff.IsNetworkError(err):
		return huma.Error502BadGateway("Page download failed", err)
	case errors.IsStore(err):
		return huma.Error503ServiceUnavailable("Settings store unavailable", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
