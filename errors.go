package smssolvers

import (
	"errors"
	"fmt"
	"time"
)

// RetryableError classifies a failure along two independent axes:
//
// IsRetryable answers whether re-issuing the same operation on the same
// task could plausibly succeed (transient network failure, rate limit,
// backend hiccup).
//
// ShouldRetryOperation answers whether abandoning the task and starting
// a fresh acquisition could succeed even when an in-place retry cannot
// (the number was banned, the task expired, but the backend is healthy).
//
// Errors that do not implement this interface are treated as
// non-retryable on both axes.
type RetryableError interface {
	error
	IsRetryable() bool
	ShouldRetryOperation() bool
}

// IsRetryable reports whether err (or any error in its chain) is
// classified as retryable in place. Unclassified errors are not.
func IsRetryable(err error) bool {
	var re RetryableError
	if errors.As(err, &re) {
		return re.IsRetryable()
	}
	return false
}

// ShouldRetryOperation reports whether a fresh acquisition might succeed
// after err. Unclassified errors are conservatively not retried.
func ShouldRetryOperation(err error) bool {
	var re RetryableError
	if errors.As(err, &re) {
		return re.ShouldRetryOperation()
	}
	return false
}

// ProviderError wraps a backend error crossing the service boundary,
// carrying the backend's retryability classification forward so outer
// layers can make retry decisions without unwrapping.
type ProviderError struct {
	Err            error
	Retryable      bool
	RetryOperation bool
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("sms provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) IsRetryable() bool { return e.Retryable }

func (e *ProviderError) ShouldRetryOperation() bool { return e.RetryOperation }

// wrapProviderErr lifts a raw backend error into a ProviderError,
// snapshotting both flags at the boundary.
func wrapProviderErr(err error) *ProviderError {
	return &ProviderError{
		Err:            err,
		Retryable:      IsRetryable(err),
		RetryOperation: ShouldRetryOperation(err),
	}
}

// NoDialCodeError means the dial-code lookup has no entry for the
// requested country. This is a data problem, not a provider failure.
type NoDialCodeError struct {
	Country Country
}

func (e *NoDialCodeError) Error() string {
	return fmt.Sprintf("no dial code known for country %s", e.Country)
}

func (e *NoDialCodeError) IsRetryable() bool { return false }

func (e *NoDialCodeError) ShouldRetryOperation() bool { return false }

// MalformedNumberError means the backend returned a number that does
// not start with the expected dial code.
type MalformedNumberError struct {
	FullNumber FullNumber
	DialCode   DialCode
	Err        error
}

func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed number %q for dial code %s: %v", e.FullNumber, e.DialCode, e.Err)
}

func (e *MalformedNumberError) Unwrap() error { return e.Err }

func (e *MalformedNumberError) IsRetryable() bool { return false }

func (e *MalformedNumberError) ShouldRetryOperation() bool { return false }

// DialCodeBlockedError means the rented number landed on a dial code
// the provider is configured to reject. The task is cancelled before
// this error is returned.
type DialCodeBlockedError struct {
	DialCode DialCode
}

func (e *DialCodeBlockedError) Error() string {
	return fmt.Sprintf("dial code %s is blocked by provider policy", e.DialCode)
}

func (e *DialCodeBlockedError) IsRetryable() bool { return false }

func (e *DialCodeBlockedError) ShouldRetryOperation() bool { return false }

// NoDialCodesError means every dial code the provider could offer for a
// service is filtered out by its blacklist.
type NoDialCodesError struct {
	Service Service
}

func (e *NoDialCodesError) Error() string {
	return fmt.Sprintf("no available dial codes for service %s", e.Service)
}

func (e *NoDialCodesError) IsRetryable() bool { return false }

func (e *NoDialCodesError) ShouldRetryOperation() bool { return false }

// TimeoutError means polling ran out of wall-clock budget before a code
// arrived. The same task is dead, but a fresh acquisition may work.
type TimeoutError struct {
	TaskID    TaskID
	Timeout   time.Duration
	Elapsed   time.Duration
	PollCount int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout waiting for code after %.1fs (%d polls); task %s",
		e.Elapsed.Seconds(), e.PollCount, e.TaskID)
}

func (e *TimeoutError) IsRetryable() bool { return false }

func (e *TimeoutError) ShouldRetryOperation() bool { return true }

// CancelledError means the caller cancelled the wait before a code
// arrived. The rented number was released.
type CancelledError struct {
	TaskID    TaskID
	Elapsed   time.Duration
	PollCount int
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("cancelled after %.1fs (%d polls); task %s",
		e.Elapsed.Seconds(), e.PollCount, e.TaskID)
}

func (e *CancelledError) IsRetryable() bool { return false }

func (e *CancelledError) ShouldRetryOperation() bool { return false }

// CancelFailedError means the best-effort Cancel issued on a
// non-success exit path itself failed: the remote number may be leaked
// and still billable. Cause is the condition that triggered the
// cleanup (timeout, cancellation, or a permanent poll error).
type CancelFailedError struct {
	TaskID TaskID
	Cause  error
	Err    error
}

func (e *CancelFailedError) Error() string {
	return fmt.Sprintf("failed to release task %s (%v) after: %v", e.TaskID, e.Err, e.Cause)
}

func (e *CancelFailedError) Unwrap() error { return e.Err }

func (e *CancelFailedError) IsRetryable() bool { return false }

func (e *CancelFailedError) ShouldRetryOperation() bool { return false }
