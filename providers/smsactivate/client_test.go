package smsactivate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlgrpe/sms-solvers/providers/smsactivate"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *smsactivate.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return smsactivate.NewClient("test_key", srv.URL)
}

func TestClientGetNumber(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test_key", q.Get("api_key"))
		assert.Equal(t, "getNumberV2", q.Get("action"))
		assert.Equal(t, "ig", q.Get("service"))
		assert.Equal(t, "62", q.Get("country"))

		w.Write([]byte(`{
			"activationId": "635468024",
			"phoneNumber": "905488242474",
			"activationCost": 12.5,
			"currency": 643,
			"countryCode": "90",
			"canGetAnotherSms": true,
			"activationTime": "2026-08-30 10:00:00",
			"activationOperator": "turkcell"
		}`))
	})

	resp, err := c.GetNumber(context.Background(), 62, "ig")
	require.NoError(t, err)
	assert.Equal(t, "635468024", resp.ActivationID)
	assert.Equal(t, "905488242474", resp.PhoneNumber)
	assert.Equal(t, 12.5, resp.ActivationCost)
	assert.True(t, resp.CanGetAnotherSMS)
}

func TestClientGetNumberNoNumbers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("NO_NUMBERS"))
	})

	_, err := c.GetNumber(context.Background(), 62, "ig")
	require.Error(t, err)

	var apiErr *smsactivate.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, smsactivate.CodeNoNumbers, apiErr.Code)
	assert.True(t, apiErr.IsRetryable())
}

func TestClientGetNumberBanned(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("BANNED:'2026-09-01 12:30:00'"))
	})

	_, err := c.GetNumber(context.Background(), 62, "ig")
	var apiErr *smsactivate.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, smsactivate.CodeBanned, apiErr.Code)
	assert.Equal(t, "2026-09-01 12:30:00", apiErr.BannedUntil)
	assert.False(t, apiErr.IsRetryable())
}

func TestClientGetNumberWrongMaxPrice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("WRONG_MAX_PRICE:15.75"))
	})

	_, err := c.GetNumber(context.Background(), 62, "ig")
	var apiErr *smsactivate.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, smsactivate.CodeWrongMaxPrice, apiErr.Code)
	assert.Equal(t, 15.75, apiErr.MinPrice)
}

func TestClientGetStatusWaiting(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "getStatusV2", q.Get("action"))
		assert.Equal(t, "635468024", q.Get("id"))
		w.Write([]byte(`{"sms": null, "call": null}`))
	})

	resp, err := c.GetStatus(context.Background(), "635468024")
	require.NoError(t, err)
	assert.Nil(t, resp.SMS)
	assert.Nil(t, resp.Call)
}

func TestClientGetStatusWithCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sms": {"dateTime": "2026-08-30 10:01:12", "code": "443556", "text": "Your code is 443556"}, "call": null}`))
	})

	resp, err := c.GetStatus(context.Background(), "635468024")
	require.NoError(t, err)
	require.NotNil(t, resp.SMS)
	assert.Equal(t, "443556", resp.SMS.Code)
	assert.Equal(t, "Your code is 443556", resp.SMS.Text)
}

func TestClientGetStatusNoActivation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("NO_ACTIVATION"))
	})

	_, err := c.GetStatus(context.Background(), "635468024")
	var apiErr *smsactivate.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.IsRetryable())
	assert.True(t, apiErr.ShouldRetryOperation())
}

func TestClientSetStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "setStatus", q.Get("action"))
		assert.Equal(t, "635468024", q.Get("id"))
		assert.Equal(t, "8", q.Get("status"))
		w.Write([]byte("ACCESS_CANCEL"))
	})

	result, err := c.SetStatus(context.Background(), "635468024", smsactivate.StatusCancel)
	require.NoError(t, err)
	assert.Equal(t, smsactivate.ResultCancel, result)
}

func TestClientSetStatusUnexpectedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("something else"))
	})

	_, err := c.SetStatus(context.Background(), "635468024", smsactivate.StatusFinish)
	var decodeErr *smsactivate.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestClientServerErrorIsTransport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>Bad Gateway</html>"))
	})

	_, err := c.GetNumber(context.Background(), 62, "ig")
	var transportErr *smsactivate.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.True(t, transportErr.IsRetryable())
}

func TestClientGarbageJSONIsDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"activationId": `))
	})

	_, err := c.GetNumber(context.Background(), 62, "ig")
	var decodeErr *smsactivate.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.False(t, decodeErr.IsRetryable())
}
