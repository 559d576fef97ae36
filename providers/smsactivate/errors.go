package smsactivate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

// ErrorCode is an SMS-Activate API error token.
type ErrorCode string

// Error tokens the API is known to return.
const (
	// Transient, worth retrying in place.
	CodeNoNumbers     ErrorCode = "NO_NUMBERS"
	CodeErrorSQL      ErrorCode = "ERROR_SQL"
	CodeChannelsLimit ErrorCode = "CHANNELS_LIMIT"

	// Dead task, fresh acquisition may work.
	CodeNoActivation      ErrorCode = "NO_ACTIVATION"
	CodeWrongActivationID ErrorCode = "WRONG_ACTIVATION_ID"

	// Account or request problems, retrying changes nothing.
	CodeBadKey              ErrorCode = "BAD_KEY"
	CodeBadAction           ErrorCode = "BAD_ACTION"
	CodeBadService          ErrorCode = "BAD_SERVICE"
	CodeBadStatus           ErrorCode = "BAD_STATUS"
	CodeOrderAlreadyExists  ErrorCode = "ORDER_ALREADY_EXISTS"
	CodeWrongExceptionPhone ErrorCode = "WRONG_EXCEPTION_PHONE"
	CodeBanned              ErrorCode = "BANNED"
	CodeWrongMaxPrice       ErrorCode = "WRONG_MAX_PRICE"
	CodeEarlyCancelDenied   ErrorCode = "EARLY_CANCEL_DENIED"
)

// APIError is an error token returned by the SMS-Activate API,
// classified along both retryability axes. Unknown tokens are kept with
// their raw text and conservatively treated as permanent.
type APIError struct {
	Code ErrorCode
	// BannedUntil carries the timestamp from BANNED:'…' responses.
	BannedUntil string
	// MinPrice carries the minimum from WRONG_MAX_PRICE:n responses,
	// 0 when absent.
	MinPrice float64
	// Raw is the response text as received.
	Raw string
}

func (e *APIError) Error() string {
	switch e.Code {
	case CodeBanned:
		return fmt.Sprintf("sms-activate: account banned until %s", e.BannedUntil)
	case CodeWrongMaxPrice:
		if e.MinPrice > 0 {
			return fmt.Sprintf("sms-activate: maximum price below allowed minimum %.2f", e.MinPrice)
		}
		return "sms-activate: maximum price below allowed minimum"
	default:
		return fmt.Sprintf("sms-activate: %s", e.Code)
	}
}

func (e *APIError) IsRetryable() bool {
	switch e.Code {
	case CodeNoNumbers, CodeErrorSQL, CodeChannelsLimit:
		return true
	}
	return false
}

func (e *APIError) ShouldRetryOperation() bool {
	switch e.Code {
	case CodeNoNumbers, CodeErrorSQL, CodeChannelsLimit,
		CodeNoActivation, CodeWrongActivationID:
		return true
	}
	return false
}

var _ smssolvers.RetryableError = (*APIError)(nil)

// TransportError is a network-level failure talking to the API. Both
// in-place retry and a fresh acquisition are worth trying.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sms-activate: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) IsRetryable() bool { return true }

func (e *TransportError) ShouldRetryOperation() bool { return true }

// DecodeError means the API answered with a body that is neither a
// known error token nor valid JSON. Treated as permanent: the contract
// with the backend is broken, not flaky.
type DecodeError struct {
	Raw string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("sms-activate: undecodable response %q: %v", snippet(e.Raw), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) IsRetryable() bool { return false }

func (e *DecodeError) ShouldRetryOperation() bool { return false }

// CountryError means the requested country has no SMS-Activate
// numeric id in the mapping table.
type CountryError struct {
	Country smssolvers.Country
}

func (e *CountryError) Error() string {
	return fmt.Sprintf("sms-activate: no country mapping for %s", e.Country)
}

func (e *CountryError) IsRetryable() bool { return false }

func (e *CountryError) ShouldRetryOperation() bool { return false }

var (
	reBanned        = regexp.MustCompile(`^BANNED\s*:\s*['"]([^'"]+)['"]$`)
	reWrongMaxPrice = regexp.MustCompile(`^WRONG_MAX_PRICE\s*:\s*([0-9]+(?:\.[0-9]+)?)$`)
)

// knownErrorPrefixes mark tokens that are error responses. ACCESS_*
// tokens are successes and must never match.
var knownErrorPrefixes = []string{
	"NO_", "ERROR_", "BAD_", "WRONG_", "EARLY_", "BANNED", "CHANNELS_", "ORDER_",
}

// parseAPIError recognizes an error token in a response body. It
// returns nil when the body is not an error (JSON payload or ACCESS_*
// confirmation).
func parseAPIError(raw string) *APIError {
	s := strings.TrimSpace(raw)

	switch ErrorCode(s) {
	case CodeNoNumbers, CodeErrorSQL, CodeChannelsLimit,
		CodeNoActivation, CodeWrongActivationID,
		CodeBadKey, CodeBadAction, CodeBadService, CodeBadStatus,
		CodeOrderAlreadyExists, CodeWrongExceptionPhone, CodeEarlyCancelDenied:
		return &APIError{Code: ErrorCode(s), Raw: s}
	}

	if m := reBanned.FindStringSubmatch(s); m != nil {
		return &APIError{Code: CodeBanned, BannedUntil: m[1], Raw: s}
	}
	if m := reWrongMaxPrice.FindStringSubmatch(s); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		return &APIError{Code: CodeWrongMaxPrice, MinPrice: min, Raw: s}
	}

	if looksLikeErrorToken(s) {
		return &APIError{Code: ErrorCode(s), Raw: s}
	}
	return nil
}

func looksLikeErrorToken(s string) bool {
	if s == "" || strings.HasPrefix(s, "ACCESS_") {
		return false
	}
	for _, prefix := range knownErrorPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func snippet(s string) string {
	const max = 80
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
