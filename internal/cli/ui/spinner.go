package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// PollSpinner provides animated feedback while waiting for a
// verification code. In TTY mode it shows a braille dot spinner with a
// live elapsed counter; in non-TTY mode it prints static text so
// piped/CI output stays clean.
type PollSpinner struct {
	w      io.Writer
	s      *spinner.Spinner
	msg    string
	active bool
	noSpin bool // true when not a TTY
}

// NewPollSpinner creates a spinner that writes to w.
// Set noSpin=true for non-interactive environments.
func NewPollSpinner(w io.Writer, noSpin bool) *PollSpinner {
	return &PollSpinner{w: w, noSpin: noSpin}
}

// Start begins waiting with an animated spinner (or static text).
func (ps *PollSpinner) Start(msg string) {
	ps.msg = msg
	if ps.noSpin {
		fmt.Fprintf(ps.w, "  %s\n", msg)
		return
	}
	ps.s = spinner.New(
		spinner.CharSets[14], // braille dots: ⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏
		80*time.Millisecond,
		spinner.WithWriter(ps.w),
	)
	ps.s.Prefix = "  "
	ps.s.Suffix = " " + msg
	ps.s.FinalMSG = ""
	ps.s.Start()
	ps.active = true
}

// Update replaces the message next to the spinner, typically with the
// elapsed wait time.
func (ps *PollSpinner) Update(msg string) {
	ps.msg = msg
	if ps.noSpin || ps.s == nil {
		return
	}
	ps.s.Suffix = " " + msg
}

// Done completes the wait with a green checkmark.
func (ps *PollSpinner) Done() {
	if ps.noSpin {
		fmt.Fprintf(ps.w, "  %s %s\n", ps.msg, StyleSuccess.Render(SymbolCheck))
		return
	}
	if ps.s != nil && ps.active {
		ps.s.Stop()
		ps.active = false
	}
	fmt.Fprintf(ps.w, "\r  %s %s\n", ps.msg, StyleSuccess.Render(SymbolCheck))
}

// Fail completes the wait with a red cross.
func (ps *PollSpinner) Fail() {
	if ps.noSpin {
		fmt.Fprintf(ps.w, "  %s %s\n", ps.msg, StyleError.Render(SymbolCross))
		return
	}
	if ps.s != nil && ps.active {
		ps.s.Stop()
		ps.active = false
	}
	fmt.Fprintf(ps.w, "\r  %s %s\n", ps.msg, StyleError.Render(SymbolCross))
}

// Stop halts the spinner without printing a status (for cleanup on
// signals).
func (ps *PollSpinner) Stop() {
	if ps.s != nil && ps.active {
		ps.s.Stop()
		ps.active = false
	}
}
