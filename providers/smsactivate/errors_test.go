package smsactivate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	smssolvers "github.com/rlgrpe/sms-solvers"
	"github.com/rlgrpe/sms-solvers/providers/smsactivate"
)

func TestAPIErrorClassification(t *testing.T) {
	tests := []struct {
		code      smsactivate.ErrorCode
		retryable bool
		retryOp   bool
	}{
		{smsactivate.CodeNoNumbers, true, true},
		{smsactivate.CodeErrorSQL, true, true},
		{smsactivate.CodeChannelsLimit, true, true},
		{smsactivate.CodeNoActivation, false, true},
		{smsactivate.CodeWrongActivationID, false, true},
		{smsactivate.CodeBadKey, false, false},
		{smsactivate.CodeBadAction, false, false},
		{smsactivate.CodeBadService, false, false},
		{smsactivate.CodeBadStatus, false, false},
		{smsactivate.CodeOrderAlreadyExists, false, false},
		{smsactivate.CodeWrongExceptionPhone, false, false},
		{smsactivate.CodeBanned, false, false},
		{smsactivate.CodeWrongMaxPrice, false, false},
		{smsactivate.CodeEarlyCancelDenied, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			err := &smsactivate.APIError{Code: tt.code}
			assert.Equal(t, tt.retryable, err.IsRetryable())
			assert.Equal(t, tt.retryOp, err.ShouldRetryOperation())
		})
	}
}

func TestAPIErrorUnknownTokenIsPermanent(t *testing.T) {
	err := &smsactivate.APIError{Code: "NO_SUCH_THING", Raw: "NO_SUCH_THING"}
	assert.False(t, err.IsRetryable())
	assert.False(t, err.ShouldRetryOperation())
}

func TestAPIErrorMessages(t *testing.T) {
	banned := &smsactivate.APIError{Code: smsactivate.CodeBanned, BannedUntil: "2026-01-01 10:00:00"}
	assert.Contains(t, banned.Error(), "banned until 2026-01-01 10:00:00")

	price := &smsactivate.APIError{Code: smsactivate.CodeWrongMaxPrice, MinPrice: 12.5}
	assert.Contains(t, price.Error(), "12.50")

	plain := &smsactivate.APIError{Code: smsactivate.CodeNoNumbers}
	assert.Contains(t, plain.Error(), "NO_NUMBERS")
}

func TestTransportErrorBothAxesRetryable(t *testing.T) {
	cause := errors.New("connection reset")
	err := &smsactivate.TransportError{Err: cause}
	assert.True(t, err.IsRetryable())
	assert.True(t, err.ShouldRetryOperation())
	assert.ErrorIs(t, err, cause)
}

func TestDecodeErrorPermanent(t *testing.T) {
	err := &smsactivate.DecodeError{Raw: "<html>oops</html>", Err: errors.New("invalid character")}
	assert.False(t, err.IsRetryable())
	assert.False(t, err.ShouldRetryOperation())
	assert.Contains(t, err.Error(), "<html>oops</html>")
}

func TestCountryErrorPermanent(t *testing.T) {
	err := &smsactivate.CountryError{Country: "XX"}
	assert.False(t, err.IsRetryable())
	assert.False(t, err.ShouldRetryOperation())
	assert.Contains(t, err.Error(), "XX")
}

func TestErrorsSatisfyClassificationHelpers(t *testing.T) {
	assert.True(t, smssolvers.IsRetryable(&smsactivate.APIError{Code: smsactivate.CodeNoNumbers}))
	assert.False(t, smssolvers.IsRetryable(&smsactivate.APIError{Code: smsactivate.CodeBadKey}))
	assert.True(t, smssolvers.ShouldRetryOperation(&smsactivate.APIError{Code: smsactivate.CodeNoActivation}))
}
