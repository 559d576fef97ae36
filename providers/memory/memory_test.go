package memory_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smssolvers "github.com/rlgrpe/sms-solvers"
	"github.com/rlgrpe/sms-solvers/providers/memory"
)

func newProvider() *memory.Provider {
	return memory.NewProvider(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAcquireNumberSynthesizes(t *testing.T) {
	p := newProvider()

	id, full, err := p.AcquireNumber(context.Background(), "TR", "wa")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.True(t, strings.HasPrefix(string(full), "90"), "number carries the dial code: %s", full)

	id2, _, err := p.AcquireNumber(context.Background(), "TR", "wa")
	require.NoError(t, err)
	assert.NotEqual(t, id, id2, "tasks get distinct ids")
}

func TestAcquireNumberUnknownCountry(t *testing.T) {
	p := newProvider()

	_, _, err := p.AcquireNumber(context.Background(), "ZZ", "wa")
	require.Error(t, err)
	assert.False(t, smssolvers.IsRetryable(err))
}

func TestPollCodeDelivery(t *testing.T) {
	p := newProvider()
	p.Code = "987654"
	p.ReadyAfter = 2

	id, _, err := p.AcquireNumber(context.Background(), "US", "ig")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, ok, err := p.PollCode(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	code, ok, err := p.PollCode(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, smssolvers.Code("987654"), code)
}

func TestPollCodeUnknownTask(t *testing.T) {
	p := newProvider()

	_, _, err := p.PollCode(context.Background(), "nope")
	require.Error(t, err)
	assert.False(t, smssolvers.IsRetryable(err))
	assert.True(t, smssolvers.ShouldRetryOperation(err))
}

func TestFinishAndCancelTrackState(t *testing.T) {
	p := newProvider()

	id, _, err := p.AcquireNumber(context.Background(), "UA", "fb")
	require.NoError(t, err)

	require.NoError(t, p.Finish(context.Background(), id))
	assert.True(t, p.Finished(id))

	require.NoError(t, p.Cancel(context.Background(), id))
	assert.True(t, p.Canceled(id))

	// A canceled task no longer accepts polls.
	_, _, err = p.PollCode(context.Background(), id)
	require.Error(t, err)
}

func TestWorksWithSolver(t *testing.T) {
	p := newProvider()
	p.ReadyAfter = 1

	solver := smssolvers.NewSolver(p, smssolvers.PollConfig{
		Timeout:      10 * time.Second,
		PollInterval: time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	acq, err := solver.AcquireNumber(context.Background(), "DE", "wa")
	require.NoError(t, err)
	assert.Equal(t, "49", acq.DialCode.String())

	code, err := solver.WaitForCode(context.Background(), acq.TaskID)
	require.NoError(t, err)
	assert.Equal(t, smssolvers.Code("123456"), code)

	require.NoError(t, solver.Finish(context.Background(), acq.TaskID))
	assert.True(t, p.Finished(acq.TaskID))
}

func TestAvailableCountriesFollowsDialCodes(t *testing.T) {
	p := newProvider()
	p.DialCodes = map[smssolvers.Country]string{"FR": "33"}

	countries := p.AvailableCountries("wa")
	assert.Equal(t, []smssolvers.Country{"FR"}, countries)
}
