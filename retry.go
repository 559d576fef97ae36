package smssolvers

import (
	"context"
	"time"
)

// RetryPolicy controls the exponential backoff schedule of a
// RetryProvider. The delay before retry n is
// min(MaxDelay, MinDelay * Factor^(n-1)).
type RetryPolicy struct {
	// MinDelay is the delay before the first retry.
	MinDelay time.Duration
	// MaxDelay clamps the backoff growth.
	MaxDelay time.Duration
	// Factor is the exponential growth factor. Values below 1 are
	// treated as 1 (constant delay).
	Factor float64
	// MaxAttempts is the total attempt budget, the first call
	// included. Values below 1 are treated as 1 (no retries).
	MaxAttempts int
}

// DefaultRetryPolicy returns the stock schedule: 1s initial delay
// doubling up to 30s, four attempts in total.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MinDelay:    1 * time.Second,
		MaxDelay:    30 * time.Second,
		Factor:      2.0,
		MaxAttempts: 4,
	}
}

// Delay returns the backoff duration after the n-th failed attempt
// (n >= 1). It is monotonically nondecreasing in n and never exceeds
// MaxDelay.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}
	d := float64(p.MinDelay)
	limit := float64(p.MaxDelay)
	for i := 1; i < attempt; i++ {
		d *= factor
		if d >= limit {
			return p.MaxDelay
		}
	}
	if d > limit {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// RetryNotify observes each retry of a decorated operation, receiving
// the error that triggered it and the delay before the next attempt.
// Used for logging and metrics; must not block for long.
type RetryNotify func(err error, delay time.Duration)

// RetryProvider decorates a Provider with automatic retry of
// AcquireNumber and PollCode on errors classified IsRetryable. Finish
// and Cancel pass through undecorated: they are already idempotent and
// best-effort. The decorator never alters error identity or
// classification — a propagated error is exactly the one the inner
// provider returned.
//
// Each logical operation runs its own attempt counter and delay
// schedule, so a shared RetryProvider is safe for concurrent use to
// the same extent its inner provider is.
type RetryProvider struct {
	inner  Provider
	policy RetryPolicy
	notify RetryNotify
}

// NewRetryProvider wraps inner with the default policy.
func NewRetryProvider(inner Provider) *RetryProvider {
	return NewRetryProviderWithPolicy(inner, DefaultRetryPolicy())
}

// NewRetryProviderWithPolicy wraps inner with a custom policy.
func NewRetryProviderWithPolicy(inner Provider, policy RetryPolicy) *RetryProvider {
	return &RetryProvider{inner: inner, policy: policy}
}

// WithNotify sets the retry observer and returns p for chaining.
func (p *RetryProvider) WithNotify(fn RetryNotify) *RetryProvider {
	p.notify = fn
	return p
}

// Inner returns the wrapped provider.
func (p *RetryProvider) Inner() Provider { return p.inner }

// Policy returns the retry policy in use.
func (p *RetryProvider) Policy() RetryPolicy { return p.policy }

type acquireResult struct {
	id   TaskID
	full FullNumber
}

func (p *RetryProvider) AcquireNumber(ctx context.Context, country Country, service Service) (TaskID, FullNumber, error) {
	res, err := retryCall(ctx, p.policy, p.notify, func() (acquireResult, error) {
		id, full, err := p.inner.AcquireNumber(ctx, country, service)
		return acquireResult{id: id, full: full}, err
	})
	return res.id, res.full, err
}

type pollResult struct {
	code Code
	ok   bool
}

func (p *RetryProvider) PollCode(ctx context.Context, id TaskID) (Code, bool, error) {
	res, err := retryCall(ctx, p.policy, p.notify, func() (pollResult, error) {
		code, ok, err := p.inner.PollCode(ctx, id)
		return pollResult{code: code, ok: ok}, err
	})
	return res.code, res.ok, err
}

func (p *RetryProvider) Finish(ctx context.Context, id TaskID) error {
	return p.inner.Finish(ctx, id)
}

func (p *RetryProvider) Cancel(ctx context.Context, id TaskID) error {
	return p.inner.Cancel(ctx, id)
}

func (p *RetryProvider) IsDialCodeSupported(dc DialCode) bool {
	return p.inner.IsDialCodeSupported(dc)
}

func (p *RetryProvider) SupportsService(s Service) bool {
	return p.inner.SupportsService(s)
}

func (p *RetryProvider) AvailableCountries(s Service) []Country {
	return p.inner.AvailableCountries(s)
}

func (p *RetryProvider) SupportedServices() []Service {
	return p.inner.SupportedServices()
}

// retryCall runs one logical operation under the policy. The attempt
// state is local to the call.
func retryCall[T any](ctx context.Context, policy RetryPolicy, notify RetryNotify, call func() (T, error)) (T, error) {
	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var zero T
	for attempt := 1; ; attempt++ {
		res, err := call()
		if err == nil {
			return res, nil
		}
		if !IsRetryable(err) || attempt >= maxAttempts {
			return zero, err
		}

		delay := policy.Delay(attempt)
		if notify != nil {
			notify(err, delay)
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			// The caller gave up mid-backoff; surface the error that
			// was being retried rather than inventing a new one.
			return zero, err
		case <-timer.C:
		}
	}
}
