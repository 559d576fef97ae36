// Package smssolvers acquires disposable phone numbers from SMS rental
// services and polls them for verification codes. The core is
// provider-agnostic: backends implement the Provider contract, the Solver
// runs the acquisition and polling orchestration on top of it, and
// RetryProvider adds transparent retry to any backend.
package smssolvers

import (
	"errors"
	"fmt"
	"strings"
)

// TaskID identifies one rented-number session at the backend. It is
// assigned by the provider on acquisition and keys every subsequent
// poll, finish, and cancel call.
type TaskID string

func (id TaskID) String() string { return string(id) }

// Code is a verification code received via SMS or call. It is opaque:
// callers only care that one arrived, not what it contains.
type Code string

func (c Code) String() string { return string(c) }

// Country is an ISO 3166-1 alpha-2 country code, e.g. "US" or "UA".
type Country string

func (c Country) String() string { return string(c) }

// Service identifies the verification target (which app or site the
// number is rented for), using the backend's own service code.
type Service string

func (s Service) String() string { return string(s) }

// FullNumber is the complete phone number as returned by the backend,
// dial code included. It is stored exactly as returned; whether it
// carries a leading '+' is a backend quirk, not a semantic difference.
type FullNumber string

func (n FullNumber) String() string { return string(n) }

// DialCode validation errors.
var (
	ErrDialCodeEmpty    = errors.New("dial code cannot be empty")
	ErrDialCodeNonDigit = errors.New("dial code must contain only digits")
)

// DialCode is an international calling code such as "1" or "380",
// stored without the leading '+'.
type DialCode struct {
	s string
}

// NewDialCode parses a dial code. A leading '+' and surrounding
// whitespace are stripped.
func NewDialCode(s string) (DialCode, error) {
	n := strings.TrimPrefix(strings.TrimSpace(s), "+")
	if n == "" {
		return DialCode{}, ErrDialCodeEmpty
	}
	if !allDigits(n) {
		return DialCode{}, ErrDialCodeNonDigit
	}
	return DialCode{s: n}, nil
}

func (d DialCode) String() string { return d.s }

// IsZero reports whether d is the zero value (not a parsed dial code).
func (d DialCode) IsZero() bool { return d.s == "" }

// NationalNumber validation errors.
var (
	ErrNumberNonDigit    = errors.New("number must contain only digits")
	ErrNumberLength      = errors.New("number must be between 4 and 14 digits")
	ErrNumberLeadingZero = errors.New("number cannot start with 0")
	ErrMissingDialCode   = errors.New("dial code not found at the beginning of the number")
)

// NationalNumber is the local part of a phone number, without the
// dial code: digits only, 4 to 14 of them, no leading zero.
type NationalNumber struct {
	s string
}

// NewNationalNumber validates and constructs a NationalNumber.
func NewNationalNumber(s string) (NationalNumber, error) {
	n := strings.TrimSpace(s)
	if !allDigits(n) {
		return NationalNumber{}, ErrNumberNonDigit
	}
	if len(n) < 4 || len(n) > 14 {
		return NationalNumber{}, ErrNumberLength
	}
	if n[0] == '0' {
		return NationalNumber{}, ErrNumberLeadingZero
	}
	return NationalNumber{s: n}, nil
}

// NationalNumberFromFull strips a known dial code prefix from a full
// number. It fails with ErrMissingDialCode when the prefix does not
// match, which usually means the backend returned a number for a
// different country than requested.
func NationalNumberFromFull(full FullNumber, dc DialCode) (NationalNumber, error) {
	s := strings.TrimPrefix(strings.TrimSpace(string(full)), "+")
	rest, ok := strings.CutPrefix(s, dc.String())
	if !ok {
		return NationalNumber{}, ErrMissingDialCode
	}
	return NewNationalNumber(rest)
}

func (n NationalNumber) String() string { return n.s }

// IsZero reports whether n is the zero value.
func (n NationalNumber) IsZero() bool { return n.s == "" }

// Acquisition is the result of renting a number: the session handle
// plus the parsed number components. It is created once per successful
// AcquireNumber call and threaded by the caller into WaitForCode.
type Acquisition struct {
	TaskID     TaskID
	DialCode   DialCode
	Number     NationalNumber
	FullNumber FullNumber
	Country    Country
}

func (a Acquisition) String() string {
	return fmt.Sprintf("task %s: +%s%s (%s)", a.TaskID, a.DialCode, a.Number, a.Country)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
