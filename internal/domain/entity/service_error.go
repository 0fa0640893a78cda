package entity

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of a portfolio request.
type ErrorKind string

const (
	ErrorKindConfiguration ErrorKind = "configuration"
	ErrorKindInvalidInput  ErrorKind = "invalid_input"
	ErrorKindUpstreamFeed  ErrorKind = "upstream_feed"
	ErrorKindUpstreamPrice ErrorKind = "upstream_price"
	ErrorKindInternal      ErrorKind = "internal"
)

// ServiceError is returned by the portfolio service for every fatal request failure.
// Message is safe to show to the caller.
type ServiceError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int // upstream status code, 0 when not applicable
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewConfigurationError reports missing or invalid required configuration.
func NewConfigurationError(msg string) *ServiceError {
	return &ServiceError{Kind: ErrorKindConfiguration, Message: msg}
}

// NewInvalidInputError reports a malformed request.
func NewInvalidInputError(msg string) *ServiceError {
	return &ServiceError{Kind: ErrorKindInvalidInput, Message: msg}
}

// NewUpstreamFeedError wraps a transfer feed failure. The upstream status code, when
// known, is folded into the message.
func NewUpstreamFeedError(provider string, err error) *ServiceError {
	se := &ServiceError{Kind: ErrorKindUpstreamFeed, Err: err}
	var statusErr *UpstreamStatusError
	if errors.As(err, &statusErr) {
		se.StatusCode = statusErr.StatusCode
		se.Message = fmt.Sprintf("%s API error: %d", provider, statusErr.StatusCode)
	} else {
		se.Message = fmt.Sprintf("%s API request failed", provider)
	}
	return se
}

// NewUpstreamPriceError wraps a single-token price lookup failure. These never leave the service.
func NewUpstreamPriceError(tokenAddress string, err error) *ServiceError {
	return &ServiceError{
		Kind:    ErrorKindUpstreamPrice,
		Message: fmt.Sprintf("price lookup failed for %s", tokenAddress),
		Err:     err,
	}
}

// KindOf returns the kind of err, ErrorKindInternal for anything that is not a ServiceError.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ErrorKindInternal
}

// PublicMessage returns the caller-facing message for err.
func PublicMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	if err == nil {
		return ""
	}
	return "Unknown error occurred"
}

// UpstreamStatusError is returned by HTTP clients when a provider answers with a non-success status.
type UpstreamStatusError struct {
	Provider   string
	URL        string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	return fmt.Sprintf("%s request to %s failed with status %d: %s", e.Provider, e.URL, e.StatusCode, e.Body)
}
