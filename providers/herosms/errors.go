// Package herosms is the hero-sms.com backend. The API speaks the same
// handler_api.php dialect as SMS-Activate: bare error tokens on
// failure, JSON on success.
package herosms

import (
	"fmt"
	"strings"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

// ErrorCode is a Hero SMS API error token.
type ErrorCode string

const (
	// Transient, worth retrying in place.
	CodeNoNumbers ErrorCode = "NO_NUMBERS"
	CodeErrorSQL  ErrorCode = "ERROR_SQL"

	// Dead task, fresh acquisition may work.
	CodeNoActivation      ErrorCode = "NO_ACTIVATION"
	CodeWrongActivationID ErrorCode = "WRONG_ACTIVATION_ID"

	// Permanent.
	CodeBadKey     ErrorCode = "BAD_KEY"
	CodeBadAction  ErrorCode = "BAD_ACTION"
	CodeBadService ErrorCode = "BAD_SERVICE"
	CodeBadStatus  ErrorCode = "BAD_STATUS"
)

// APIError is an error token from the Hero SMS API. Unknown tokens are
// treated as permanent.
type APIError struct {
	Code ErrorCode
	Raw  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hero-sms: %s", e.Code)
}

func (e *APIError) IsRetryable() bool {
	switch e.Code {
	case CodeNoNumbers, CodeErrorSQL:
		return true
	}
	return false
}

func (e *APIError) ShouldRetryOperation() bool {
	switch e.Code {
	case CodeNoNumbers, CodeErrorSQL, CodeNoActivation, CodeWrongActivationID:
		return true
	}
	return false
}

var _ smssolvers.RetryableError = (*APIError)(nil)

// TransportError is a network-level failure talking to the API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("hero-sms: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) IsRetryable() bool { return true }

func (e *TransportError) ShouldRetryOperation() bool { return true }

// DecodeError means the API answered with a body that is neither a
// known error token nor valid JSON.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("hero-sms: undecodable response %q: %v", e.Raw, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) IsRetryable() bool { return false }

func (e *DecodeError) ShouldRetryOperation() bool { return false }

// CountryError means the requested country has no Hero SMS numeric id.
type CountryError struct {
	Country smssolvers.Country
}

func (e *CountryError) Error() string {
	return fmt.Sprintf("hero-sms: no country mapping for %s", e.Country)
}

func (e *CountryError) IsRetryable() bool { return false }

func (e *CountryError) ShouldRetryOperation() bool { return false }

var errorPrefixes = []string{"NO_", "ERROR_", "BAD_", "WRONG_"}

// parseAPIError recognizes an error token in a response body; nil
// means the body is not an error. ACCESS_* tokens are confirmations.
func parseAPIError(raw string) *APIError {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, "ACCESS_") {
		return nil
	}
	for _, prefix := range errorPrefixes {
		if strings.HasPrefix(s, prefix) {
			return &APIError{Code: ErrorCode(s), Raw: s}
		}
	}
	return nil
}
