package smssolvers_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

// flakyProvider fails a fixed number of times per operation before
// succeeding, and counts every call.
type flakyProvider struct {
	smssolvers.PermissiveCapabilities

	mu           sync.Mutex
	acquireFails int
	pollFails    int
	failWith     error

	acquireCalls int
	pollCalls    int
	finishCalls  int
	cancelCalls  int
}

func (f *flakyProvider) AcquireNumber(_ context.Context, _ smssolvers.Country, _ smssolvers.Service) (smssolvers.TaskID, smssolvers.FullNumber, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acquireCalls++
	if f.acquireFails > 0 {
		f.acquireFails--
		return "", "", f.failWith
	}
	return "task-1", "905488242474", nil
}

func (f *flakyProvider) PollCode(_ context.Context, _ smssolvers.TaskID) (smssolvers.Code, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pollCalls++
	if f.pollFails > 0 {
		f.pollFails--
		return "", false, f.failWith
	}
	return "123456", true, nil
}

func (f *flakyProvider) Finish(_ context.Context, _ smssolvers.TaskID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finishCalls++
	return f.failWith
}

func (f *flakyProvider) Cancel(_ context.Context, _ smssolvers.TaskID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelCalls++
	return f.failWith
}

func fastPolicy(maxAttempts int) smssolvers.RetryPolicy {
	return smssolvers.RetryPolicy{
		MinDelay:    time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		Factor:      2.0,
		MaxAttempts: maxAttempts,
	}
}

func TestRetryPolicyDelayMonotonicAndClamped(t *testing.T) {
	policies := []smssolvers.RetryPolicy{
		{MinDelay: 100 * time.Millisecond, MaxDelay: 5 * time.Second, Factor: 2.0},
		{MinDelay: 500 * time.Millisecond, MaxDelay: 60 * time.Second, Factor: 1.5},
		{MinDelay: time.Second, MaxDelay: 30 * time.Second, Factor: 3.0},
		{MinDelay: time.Second, MaxDelay: time.Second, Factor: 2.0},
	}

	for _, p := range policies {
		prev := time.Duration(0)
		for attempt := 1; attempt <= 40; attempt++ {
			d := p.Delay(attempt)
			assert.GreaterOrEqual(t, d, prev, "attempt %d", attempt)
			assert.LessOrEqual(t, d, p.MaxDelay, "attempt %d", attempt)
			prev = d
		}
	}
}

func TestRetryPolicyDelaySchedule(t *testing.T) {
	p := smssolvers.RetryPolicy{MinDelay: time.Second, MaxDelay: 30 * time.Second, Factor: 2.0}

	assert.Equal(t, 1*time.Second, p.Delay(1))
	assert.Equal(t, 2*time.Second, p.Delay(2))
	assert.Equal(t, 4*time.Second, p.Delay(3))
	assert.Equal(t, 30*time.Second, p.Delay(6)) // 32s clamped
	assert.Equal(t, 30*time.Second, p.Delay(20))
}

func TestRetryProviderRetriesTransientAcquire(t *testing.T) {
	inner := &flakyProvider{
		acquireFails: 2,
		failWith:     &classifiedErr{msg: "backend busy", retryable: true, retryOp: true},
	}
	p := smssolvers.NewRetryProviderWithPolicy(inner, fastPolicy(4))

	id, full, err := p.AcquireNumber(context.Background(), "TR", "wa")
	require.NoError(t, err)
	assert.Equal(t, smssolvers.TaskID("task-1"), id)
	assert.Equal(t, smssolvers.FullNumber("905488242474"), full)
	assert.Equal(t, 3, inner.acquireCalls)
}

func TestRetryProviderSingleAttemptOnPermanentError(t *testing.T) {
	permanent := &classifiedErr{msg: "bad credentials", retryable: false, retryOp: false}
	inner := &flakyProvider{acquireFails: 100, failWith: permanent}
	p := smssolvers.NewRetryProviderWithPolicy(inner, fastPolicy(50))

	_, _, err := p.AcquireNumber(context.Background(), "TR", "wa")
	require.Error(t, err)
	// Error identity is preserved, not wrapped.
	assert.Equal(t, permanent, err)
	assert.Equal(t, 1, inner.acquireCalls)
}

func TestRetryProviderExhaustsBudget(t *testing.T) {
	transient := &classifiedErr{msg: "timeout", retryable: true, retryOp: true}
	inner := &flakyProvider{pollFails: 100, failWith: transient}
	p := smssolvers.NewRetryProviderWithPolicy(inner, fastPolicy(3))

	_, _, err := p.PollCode(context.Background(), "task-1")
	require.Error(t, err)
	assert.Equal(t, transient, err)
	assert.Equal(t, 3, inner.pollCalls)
}

func TestRetryProviderNotifyObservesEachRetry(t *testing.T) {
	inner := &flakyProvider{
		pollFails: 2,
		failWith:  &classifiedErr{msg: "flaky", retryable: true, retryOp: true},
	}

	type event struct {
		err   error
		delay time.Duration
	}
	var mu sync.Mutex
	var events []event

	p := smssolvers.NewRetryProviderWithPolicy(inner, fastPolicy(4)).
		WithNotify(func(err error, delay time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event{err: err, delay: delay})
		})

	code, ok, err := p.PollCode(context.Background(), "task-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, smssolvers.Code("123456"), code)

	require.Len(t, events, 2)
	assert.Equal(t, time.Millisecond, events[0].delay)
	assert.Equal(t, 2*time.Millisecond, events[1].delay)
	assert.EqualError(t, events[0].err, "flaky")
}

func TestRetryProviderFinishAndCancelPassThrough(t *testing.T) {
	transient := &classifiedErr{msg: "busy", retryable: true, retryOp: true}
	inner := &flakyProvider{failWith: transient}
	p := smssolvers.NewRetryProviderWithPolicy(inner, fastPolicy(10))

	err := p.Finish(context.Background(), "task-1")
	assert.Equal(t, transient, err)
	assert.Equal(t, 1, inner.finishCalls)

	err = p.Cancel(context.Background(), "task-1")
	assert.Equal(t, transient, err)
	assert.Equal(t, 1, inner.cancelCalls)
}

func TestRetryProviderStopsWhenContextCancelled(t *testing.T) {
	transient := &classifiedErr{msg: "busy", retryable: true, retryOp: true}
	inner := &flakyProvider{pollFails: 1000, failWith: transient}
	p := smssolvers.NewRetryProviderWithPolicy(inner, smssolvers.RetryPolicy{
		MinDelay:    time.Hour,
		MaxDelay:    time.Hour,
		Factor:      2.0,
		MaxAttempts: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := p.PollCode(ctx, "task-1")
	require.Error(t, err)
	assert.Equal(t, transient, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, inner.pollCalls)
}

func TestRetryProviderIndependentAttemptState(t *testing.T) {
	inner := &flakyProvider{
		pollFails: 2,
		failWith:  &classifiedErr{msg: "busy", retryable: true, retryOp: true},
	}
	p := smssolvers.NewRetryProviderWithPolicy(inner, fastPolicy(4))

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = p.PollCode(context.Background(), "task-1")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestRetryProviderCapabilityDelegation(t *testing.T) {
	inner := &flakyProvider{}
	p := smssolvers.NewRetryProvider(inner)

	dc, err := smssolvers.NewDialCode("1")
	require.NoError(t, err)
	assert.True(t, p.IsDialCodeSupported(dc))
	assert.True(t, p.SupportsService("wa"))
	assert.Empty(t, p.AvailableCountries("wa"))
	assert.Empty(t, p.SupportedServices())
	assert.Same(t, inner, p.Inner())
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := smssolvers.DefaultRetryPolicy()
	assert.Equal(t, time.Second, p.MinDelay)
	assert.Equal(t, 30*time.Second, p.MaxDelay)
	assert.Equal(t, 2.0, p.Factor)
	assert.Equal(t, 4, p.MaxAttempts)
}
