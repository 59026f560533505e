// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to flat JSON error bodies with the matching status

package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"feeds-app-api/core/errors"
)

// Body decoding and schema validation failures raised by huma itself use the
// same flat shape as handler errors.
func init() {
	huma.NewError = requestError
}

// APIError is written as {"error": "..."}; extraction routes also carry "success": false.
// It implements huma.StatusError so huma uses its status and serializes it as the body.
type APIError struct {
	status  int
	Success *bool  `json:"success,omitempty"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *APIError) GetStatus() int {
	return e.status
}

func newError(status int, msg string) *APIError {
	return &APIError{status: status, Message: msg}
}

func extractionError(status int, msg string) *APIError {
	failed := false
	return &APIError{status: status, Success: &failed, Message: msg}
}

// requestError builds the error huma returns before a handler runs, such as an
// unparseable or invalid request body
func requestError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg += ": " + strings.Join(details, "; ")
	}
	return extractionError(status, msg)
}

// toHumaError converts domain errors to appropriate HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsValidation(err) {
		return newError(http.StatusBadRequest, validationMessage(err))
	}

	if errors.IsNotFound(err) {
		return newError(http.StatusNotFound, err.Error())
	}

	if errors.IsTimeout(err) {
		return newError(http.StatusGatewayTimeout, "Request timeout")
	}

	var fetchErr *errors.FetchError
	if stderrors.As(err, &fetchErr) {
		return newError(http.StatusBadGateway, err.Error())
	}

	var apiErr *errors.ExternalAPIError
	if stderrors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return newError(http.StatusTooManyRequests, "Rate limited by external service")
		case apiErr.StatusCode >= 500:
			return newError(http.StatusServiceUnavailable, "External service error")
		default:
			return newError(http.StatusBadGateway, err.Error())
		}
	}

	return newError(http.StatusInternalServerError, err.Error())
}

func validationMessage(err error) string {
	var v *errors.ValidationError
	if stderrors.As(err, &v) && v.Message != "" {
		return v.Message
	}
	return err.Error()
}
