package smssolvers

import "context"

// Provider is the capability contract every rental backend satisfies.
//
// Implementations translate these operations into the backend's wire
// protocol and express every failure through the RetryableError
// taxonomy. They must be safe for concurrent use: one Provider value is
// typically shared by many in-flight orchestration runs.
type Provider interface {
	// AcquireNumber rents a number in the given country for the given
	// verification target and returns the session handle plus the full
	// number as the backend reports it.
	AcquireNumber(ctx context.Context, country Country, service Service) (TaskID, FullNumber, error)

	// PollCode asks whether a verification code has arrived for the
	// task. ok == false with a nil error means "not yet, poll again" —
	// that is the normal state for most of a task's lifetime, not a
	// failure.
	PollCode(ctx context.Context, id TaskID) (code Code, ok bool, err error)

	// Finish reports that the code was used successfully. Idempotent,
	// best-effort.
	Finish(ctx context.Context, id TaskID) error

	// Cancel releases the rented number. Idempotent, and safe to call
	// after any failure, including an AcquireNumber that failed in a
	// way that still opened a billable session.
	Cancel(ctx context.Context, id TaskID) error

	// IsDialCodeSupported reports whether numbers with this dial code
	// are acceptable. Backends use it to enforce blacklists; it filters
	// policy, not identity.
	IsDialCodeSupported(dc DialCode) bool

	// SupportsService reports whether the backend can rent numbers for
	// the given verification target.
	SupportsService(s Service) bool

	// AvailableCountries lists countries where the service can be
	// rented. An empty list means the backend does not publish one.
	AvailableCountries(s Service) []Country

	// SupportedServices lists the verification targets this backend
	// knows about. May be empty for backends accepting arbitrary codes.
	SupportedServices() []Service
}

// PermissiveCapabilities provides the default capability answers:
// every dial code and service is accepted and no discovery lists are
// published. Backends embed it and override what they actually know.
type PermissiveCapabilities struct{}

func (PermissiveCapabilities) IsDialCodeSupported(DialCode) bool { return true }

func (PermissiveCapabilities) SupportsService(Service) bool { return true }

func (PermissiveCapabilities) AvailableCountries(Service) []Country { return nil }

func (PermissiveCapabilities) SupportedServices() []Service { return nil }
