// ABOUTME: Custom error types for the core business logic
// ABOUTME: Classifies failures structurally so callers never inspect error text

package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// NotFoundError represents a missing key or resource
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a malformed request
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents a non-success answer from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// FetchKind tells why a request never produced an HTTP response
type FetchKind string

const (
	// FetchTimeout means the attempt ran past its deadline
	FetchTimeout FetchKind = "timeout"

	// FetchTransport means the connection failed (dial, DNS, reset)
	FetchTransport FetchKind = "transport"

	// FetchRequest means the request itself could not be built or was cancelled by the caller
	FetchRequest FetchKind = "request"
)

// FetchError is returned when no HTTP response was received.
// Responses with error statuses are not FetchErrors.
type FetchError struct {
	Kind FetchKind
	URL  string
	Err  error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed (%s): %v", e.URL, e.Kind, e.Err)
}

// Unwrap exposes the underlying transport error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClassifyFetch wraps a client error in a FetchError with a kind derived from its type
func ClassifyFetch(url string, err error) *FetchError {
	return &FetchError{Kind: fetchKind(err), URL: url, Err: err}
}

func fetchKind(err error) FetchKind {
	if errors.Is(err, context.Canceled) {
		return FetchRequest
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FetchTransport
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FetchTransport
	}

	return FetchRequest
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsTimeout checks if an error is a FetchError caused by a deadline
func IsTimeout(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == FetchTimeout
}

// IsRetryable reports whether another attempt could succeed: timeouts and transport failures only
func IsRetryable(err error) bool {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		return false
	}
	return fetchErr.Kind == FetchTimeout || fetchErr.Kind == FetchTransport
}
