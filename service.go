package smssolvers

import (
	"context"
	"log/slog"
	"time"
)

// releaseTimeout bounds the best-effort Cancel issued on non-success
// exit paths. It runs on a context detached from the caller's, so a
// cancelled caller cannot also kill the cleanup.
const releaseTimeout = 30 * time.Second

// Solver composes a Provider with a PollConfig and a dial-code lookup
// to expose the two high-level operations of the package: renting a
// number and waiting for its verification code.
//
// A Solver holds no per-call state and is safe for concurrent use by
// independent tasks. Running more than one WaitForCode for the same
// TaskID is the caller's bug; the Solver does not deduplicate.
type Solver struct {
	provider Provider
	config   PollConfig
	lookup   DialCodeLookup
	logger   *slog.Logger
}

// NewSolver creates a Solver. A nil logger falls back to slog.Default.
// The dial-code lookup defaults to libphonenumber metadata; override
// with WithDialCodeLookup.
func NewSolver(provider Provider, config PollConfig, logger *slog.Logger) *Solver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Solver{
		provider: provider,
		config:   config,
		lookup:   LibDialCodes{},
		logger:   logger,
	}
}

// WithDialCodeLookup replaces the dial-code lookup and returns s.
func (s *Solver) WithDialCodeLookup(lookup DialCodeLookup) *Solver {
	s.lookup = lookup
	return s
}

// Provider returns the underlying provider.
func (s *Solver) Provider() Provider { return s.provider }

// Config returns the poll configuration.
func (s *Solver) Config() PollConfig { return s.config }

// AcquireNumber rents a number for country and service and parses it
// into an Acquisition. Provider failures come back as *ProviderError
// carrying both retryability flags; a country the lookup does not know
// yields *NoDialCodeError; a number that does not start with the
// expected dial code yields *MalformedNumberError. Whenever a number
// was already rented before the failure, the task is released first.
func (s *Solver) AcquireNumber(ctx context.Context, country Country, service Service) (Acquisition, error) {
	id, full, err := s.provider.AcquireNumber(ctx, country, service)
	if err != nil {
		return Acquisition{}, wrapProviderErr(err)
	}

	dc, ok := s.lookup.DialCode(country)
	if !ok {
		s.releaseQuietly(ctx, id, "unknown dial code")
		return Acquisition{}, &NoDialCodeError{Country: country}
	}

	if !s.provider.IsDialCodeSupported(dc) {
		s.releaseQuietly(ctx, id, "blocked dial code")
		return Acquisition{}, &DialCodeBlockedError{DialCode: dc}
	}

	number, err := NationalNumberFromFull(full, dc)
	if err != nil {
		s.releaseQuietly(ctx, id, "malformed number")
		return Acquisition{}, &MalformedNumberError{FullNumber: full, DialCode: dc, Err: err}
	}

	s.logger.Info("number acquired",
		"task_id", id,
		"country", country,
		"dial_code", dc,
		"service", service,
	)
	return Acquisition{
		TaskID:     id,
		DialCode:   dc,
		Number:     number,
		FullNumber: full,
		Country:    country,
	}, nil
}

// WaitForCode polls the provider until a verification code arrives,
// the configured timeout elapses, ctx is cancelled, or the provider
// reports a permanent error. Cancelling ctx is the external cancel
// signal: pass context.Background() for an uncancellable wait.
//
// Every iteration checks cancellation first, then the timeout, then
// polls — an already-cancelled or already-expired wait never issues
// another network request. Retryable poll errors are absorbed: the
// loop itself is the retry policy, bounded by wall-clock time rather
// than attempt count. On every exit other than success exactly one
// best-effort Cancel releases the rented number; if that Cancel fails
// the returned error is a *CancelFailedError wrapping the triggering
// condition, so leaked remote resources stay visible to monitoring.
func (s *Solver) WaitForCode(ctx context.Context, id TaskID) (Code, error) {
	start := time.Now()
	pollCount := 0

	s.logger.Debug("waiting for code",
		"task_id", id,
		"timeout", s.config.Timeout,
		"poll_interval", s.config.PollInterval,
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("wait cancelled", "task_id", id, "polls", pollCount)
			return "", s.release(ctx, id, &CancelledError{
				TaskID:    id,
				Elapsed:   time.Since(start),
				PollCount: pollCount,
			})
		default:
		}

		if elapsed := time.Since(start); elapsed >= s.config.Timeout {
			s.logger.Warn("timeout waiting for code", "task_id", id, "elapsed", elapsed, "polls", pollCount)
			return "", s.release(ctx, id, &TimeoutError{
				TaskID:    id,
				Timeout:   s.config.Timeout,
				Elapsed:   elapsed,
				PollCount: pollCount,
			})
		}

		pollCount++
		code, ok, err := s.provider.PollCode(ctx, id)
		switch {
		case err == nil && ok:
			s.logger.Info("code received", "task_id", id, "elapsed", time.Since(start), "polls", pollCount)
			return code, nil
		case err == nil:
			// Not yet received, keep polling.
		case !IsRetryable(err):
			s.logger.Error("permanent error while polling", "task_id", id, "error", err)
			perr := &ProviderError{
				Err:            err,
				Retryable:      false,
				RetryOperation: ShouldRetryOperation(err),
			}
			return "", s.release(ctx, id, perr)
		default:
			s.logger.Debug("transient error while polling", "task_id", id, "error", err)
		}

		timer := time.NewTimer(s.config.PollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			// Cancellation is handled at the top of the next iteration.
		case <-timer.C:
		}
	}
}

// Finish reports the code as used. Thin passthrough; provider errors
// are wrapped like every other boundary crossing.
func (s *Solver) Finish(ctx context.Context, id TaskID) error {
	if err := s.provider.Finish(ctx, id); err != nil {
		return wrapProviderErr(err)
	}
	return nil
}

// Cancel releases a rented number on caller demand.
func (s *Solver) Cancel(ctx context.Context, id TaskID) error {
	if err := s.provider.Cancel(ctx, id); err != nil {
		return wrapProviderErr(err)
	}
	return nil
}

// AvailableDialCodes lists the dial codes the provider can currently
// serve for a service, with blacklisted codes filtered out. Returns
// *NoDialCodesError when nothing remains.
func (s *Solver) AvailableDialCodes(service Service) ([]DialCode, error) {
	seen := make(map[string]struct{})
	var out []DialCode
	for _, country := range s.provider.AvailableCountries(service) {
		dc, ok := s.lookup.DialCode(country)
		if !ok {
			continue
		}
		if !s.provider.IsDialCodeSupported(dc) {
			continue
		}
		if _, dup := seen[dc.String()]; dup {
			continue
		}
		seen[dc.String()] = struct{}{}
		out = append(out, dc)
	}
	if len(out) == 0 {
		return nil, &NoDialCodesError{Service: service}
	}
	return out, nil
}

// release performs the single best-effort Cancel owed on a non-success
// exit and folds its outcome into the terminal error: the triggering
// condition when cleanup worked, *CancelFailedError when it did not.
func (s *Solver) release(ctx context.Context, id TaskID, cause error) error {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := s.provider.Cancel(cctx, id); err != nil {
		s.logger.Error("failed to release task", "task_id", id, "error", err)
		return &CancelFailedError{TaskID: id, Cause: cause, Err: err}
	}
	return cause
}

// releaseQuietly cancels a task whose acquisition went wrong after the
// backend had already rented the number. Failures are logged, not
// surfaced: the primary error wins on these paths.
func (s *Solver) releaseQuietly(ctx context.Context, id TaskID, reason string) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := s.provider.Cancel(cctx, id); err != nil {
		s.logger.Warn("failed to release task after acquisition error",
			"task_id", id,
			"reason", reason,
			"error", err,
		)
	}
}
