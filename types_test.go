package smssolvers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	smssolvers "github.com/rlgrpe/sms-solvers"
)

func TestNewDialCode(t *testing.T) {
	for _, in := range []string{"1", "44", "380"} {
		dc, err := smssolvers.NewDialCode(in)
		require.NoError(t, err)
		assert.Equal(t, in, dc.String())
	}
}

func TestNewDialCodeStripsPlus(t *testing.T) {
	dc, err := smssolvers.NewDialCode("+380")
	require.NoError(t, err)
	assert.Equal(t, "380", dc.String())
}

func TestNewDialCodeTrimsWhitespace(t *testing.T) {
	dc, err := smssolvers.NewDialCode("  +7  ")
	require.NoError(t, err)
	assert.Equal(t, "7", dc.String())
}

func TestNewDialCodeEmpty(t *testing.T) {
	_, err := smssolvers.NewDialCode("")
	assert.ErrorIs(t, err, smssolvers.ErrDialCodeEmpty)

	_, err = smssolvers.NewDialCode("+")
	assert.ErrorIs(t, err, smssolvers.ErrDialCodeEmpty)
}

func TestNewDialCodeNonDigit(t *testing.T) {
	_, err := smssolvers.NewDialCode("12a")
	assert.ErrorIs(t, err, smssolvers.ErrDialCodeNonDigit)
}

func TestNewNationalNumber(t *testing.T) {
	for _, in := range []string{"1234", "12345678", "12345678901234"} {
		n, err := smssolvers.NewNationalNumber(in)
		require.NoError(t, err)
		assert.Equal(t, in, n.String())
	}
}

func TestNewNationalNumberLength(t *testing.T) {
	_, err := smssolvers.NewNationalNumber("123")
	assert.ErrorIs(t, err, smssolvers.ErrNumberLength)

	_, err = smssolvers.NewNationalNumber("123456789012345")
	assert.ErrorIs(t, err, smssolvers.ErrNumberLength)
}

func TestNewNationalNumberNonDigit(t *testing.T) {
	_, err := smssolvers.NewNationalNumber("123a456")
	assert.ErrorIs(t, err, smssolvers.ErrNumberNonDigit)
}

func TestNewNationalNumberLeadingZero(t *testing.T) {
	_, err := smssolvers.NewNationalNumber("01234567")
	assert.ErrorIs(t, err, smssolvers.ErrNumberLeadingZero)
}

func TestNationalNumberFromFull(t *testing.T) {
	dc, err := smssolvers.NewDialCode("90")
	require.NoError(t, err)

	n, err := smssolvers.NationalNumberFromFull("905488242474", dc)
	require.NoError(t, err)
	assert.Equal(t, "5488242474", n.String())
}

func TestNationalNumberFromFullWithPlus(t *testing.T) {
	dc, err := smssolvers.NewDialCode("380")
	require.NoError(t, err)

	n, err := smssolvers.NationalNumberFromFull("+380501234567", dc)
	require.NoError(t, err)
	assert.Equal(t, "501234567", n.String())
}

func TestNationalNumberFromFullMissingDialCode(t *testing.T) {
	dc, err := smssolvers.NewDialCode("380")
	require.NoError(t, err)

	_, err = smssolvers.NationalNumberFromFull("905488242474", dc)
	assert.ErrorIs(t, err, smssolvers.ErrMissingDialCode)
}

// For any valid national number n and dial code d, stripping d from
// d+n gives n back.
func TestNationalNumberRoundTrip(t *testing.T) {
	dialCodes := []string{"1", "44", "90", "380"}
	numbers := []string{"5488242474", "1234", "98765432101234"}

	for _, d := range dialCodes {
		for _, num := range numbers {
			dc, err := smssolvers.NewDialCode(d)
			require.NoError(t, err)
			want, err := smssolvers.NewNationalNumber(num)
			require.NoError(t, err)

			full := smssolvers.FullNumber(d + num)
			got, err := smssolvers.NationalNumberFromFull(full, dc)
			require.NoError(t, err, "full=%s dial=%s", full, d)
			assert.Equal(t, want, got)
		}
	}
}

func TestAcquisitionString(t *testing.T) {
	dc, _ := smssolvers.NewDialCode("90")
	n, _ := smssolvers.NewNationalNumber("5488242474")
	a := smssolvers.Acquisition{
		TaskID:     "42",
		DialCode:   dc,
		Number:     n,
		FullNumber: "905488242474",
		Country:    "TR",
	}
	assert.Equal(t, "task 42: +905488242474 (TR)", a.String())
}
