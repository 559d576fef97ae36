// Package memory is an in-process provider for development and
// integration tests. It hands out synthetic numbers and delivers a
// configured code after a configurable number of polls, without
// touching any network.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

// Provider simulates an SMS verification backend. Safe for concurrent
// use.
type Provider struct {
	smssolvers.PermissiveCapabilities

	mu     sync.Mutex
	tasks  map[smssolvers.TaskID]*task
	logger *slog.Logger

	// Code is delivered for every activation. Defaults to "123456".
	Code smssolvers.Code
	// ReadyAfter is how many polls return "not yet" before the code
	// arrives. Zero delivers on the first poll.
	ReadyAfter int
	// DialCodes maps countries to the dial code used when
	// synthesizing numbers. Defaults to a small built-in set.
	DialCodes map[smssolvers.Country]string
}

var _ smssolvers.Provider = (*Provider)(nil)

type task struct {
	country  smssolvers.Country
	service  smssolvers.Service
	polls    int
	finished bool
	canceled bool
}

var defaultDialCodes = map[smssolvers.Country]string{
	"US": "1",
	"CA": "1",
	"GB": "44",
	"DE": "49",
	"UA": "380",
	"TR": "90",
}

// NewProvider creates a Provider. If logger is nil, slog.Default() is
// used.
func NewProvider(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{
		tasks:  make(map[smssolvers.TaskID]*task),
		logger: logger,
		Code:   "123456",
	}
}

func (p *Provider) dialCode(c smssolvers.Country) (string, bool) {
	if p.DialCodes != nil {
		dc, ok := p.DialCodes[c]
		return dc, ok
	}
	dc, ok := defaultDialCodes[c]
	return dc, ok
}

func (p *Provider) AcquireNumber(_ context.Context, country smssolvers.Country, service smssolvers.Service) (smssolvers.TaskID, smssolvers.FullNumber, error) {
	dc, ok := p.dialCode(country)
	if !ok {
		return "", "", &unknownCountryError{country: country}
	}

	id := smssolvers.TaskID(uuid.NewString())
	full := smssolvers.FullNumber(fmt.Sprintf("%s555%07d", dc, rand.Intn(10_000_000)))

	p.mu.Lock()
	p.tasks[id] = &task{country: country, service: service}
	p.mu.Unlock()

	p.logger.Info("memory provider issued number", "task_id", id, "number", full)
	return id, full, nil
}

func (p *Provider) PollCode(_ context.Context, id smssolvers.TaskID) (smssolvers.Code, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tk, ok := p.tasks[id]
	if !ok || tk.canceled {
		return "", false, &deadTaskError{id: id}
	}
	tk.polls++
	if tk.polls <= p.ReadyAfter {
		return "", false, nil
	}
	return p.Code, true, nil
}

func (p *Provider) Finish(_ context.Context, id smssolvers.TaskID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	tk, ok := p.tasks[id]
	if !ok {
		return &deadTaskError{id: id}
	}
	tk.finished = true
	return nil
}

func (p *Provider) Cancel(_ context.Context, id smssolvers.TaskID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	tk, ok := p.tasks[id]
	if !ok {
		return &deadTaskError{id: id}
	}
	tk.canceled = true
	return nil
}

func (p *Provider) AvailableCountries(smssolvers.Service) []smssolvers.Country {
	countries := make([]smssolvers.Country, 0, len(defaultDialCodes))
	src := p.DialCodes
	if src == nil {
		src = defaultDialCodes
	}
	for c := range src {
		countries = append(countries, c)
	}
	return countries
}

// Finished reports whether the task was finished.
func (p *Provider) Finished(id smssolvers.TaskID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	tk, ok := p.tasks[id]
	return ok && tk.finished
}

// Canceled reports whether the task was canceled.
func (p *Provider) Canceled(id smssolvers.TaskID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	tk, ok := p.tasks[id]
	return ok && tk.canceled
}

type unknownCountryError struct {
	country smssolvers.Country
}

func (e *unknownCountryError) Error() string {
	return fmt.Sprintf("memory: no dial code for country %s", e.country)
}

func (e *unknownCountryError) IsRetryable() bool { return false }

func (e *unknownCountryError) ShouldRetryOperation() bool { return false }

type deadTaskError struct {
	id smssolvers.TaskID
}

func (e *deadTaskError) Error() string {
	return fmt.Sprintf("memory: no such task %s", e.id)
}

func (e *deadTaskError) IsRetryable() bool { return false }

func (e *deadTaskError) ShouldRetryOperation() bool { return true }
