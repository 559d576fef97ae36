package smssolvers

import (
	"fmt"
	"time"
)

// Floors for PollConfig validation. Anything below these is either a
// typo or a configuration that would hammer the backend.
const (
	MinTimeout      = 10 * time.Second
	MinPollInterval = 100 * time.Millisecond
)

// PollConfig bounds one WaitForCode run: how long to keep asking, and
// how long to pause between asks.
type PollConfig struct {
	// Timeout is the wall-clock budget for the whole polling run.
	Timeout time.Duration
	// PollInterval is the pause between consecutive polls.
	PollInterval time.Duration
}

// Named points in the timeout/interval space.

// FastPollConfig suits codes that usually arrive within seconds.
func FastPollConfig() PollConfig {
	return PollConfig{Timeout: 60 * time.Second, PollInterval: 1 * time.Second}
}

// BalancedPollConfig is the default: forgiving timeout, gentle rate.
func BalancedPollConfig() PollConfig {
	return PollConfig{Timeout: 120 * time.Second, PollInterval: 3 * time.Second}
}

// PatientPollConfig suits slow routes and congested backends.
func PatientPollConfig() PollConfig {
	return PollConfig{Timeout: 300 * time.Second, PollInterval: 5 * time.Second}
}

// Validate checks the configuration against the floors and the
// interval/timeout ordering. All three presets validate clean.
func (c PollConfig) Validate() error {
	if c.Timeout < MinTimeout {
		return fmt.Errorf("poll config: timeout %v below minimum %v", c.Timeout, MinTimeout)
	}
	if c.PollInterval < MinPollInterval {
		return fmt.Errorf("poll config: poll interval %v below minimum %v", c.PollInterval, MinPollInterval)
	}
	if c.PollInterval >= c.Timeout {
		return fmt.Errorf("poll config: poll interval %v must be below timeout %v", c.PollInterval, c.Timeout)
	}
	return nil
}

// NewPollConfig builds and validates a PollConfig in one step.
func NewPollConfig(timeout, pollInterval time.Duration) (PollConfig, error) {
	c := PollConfig{Timeout: timeout, PollInterval: pollInterval}
	if err := c.Validate(); err != nil {
		return PollConfig{}, err
	}
	return c, nil
}
