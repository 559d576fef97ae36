// Package smsactivate is the sms-activate.org backend. The API is a
// single query-string endpoint that answers with JSON on success and
// bare error tokens like "NO_NUMBERS" on failure; this package hides
// that mix behind the smssolvers.Provider contract.
package smsactivate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.sms-activate.org/stubs/handler_api.php"

// Client is a low-level SMS-Activate API client. It is safe for
// concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	client  http.Client
}

// NewClient creates a Client. If baseURL is empty, the production API
// endpoint is used (tests pass an httptest server URL).
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  http.Client{Timeout: 30 * time.Second},
	}
}

// NumberResponse is the getNumberV2 success payload.
type NumberResponse struct {
	ActivationID       string  `json:"activationId"`
	PhoneNumber        string  `json:"phoneNumber"`
	ActivationCost     float64 `json:"activationCost"`
	Currency           int     `json:"currency"`
	CountryCode        string  `json:"countryCode"`
	CanGetAnotherSMS   bool    `json:"canGetAnotherSms"`
	ActivationTime     string  `json:"activationTime"`
	ActivationEndTime  string  `json:"activationEndTime"`
	ActivationOperator string  `json:"activationOperator"`
}

// StatusResponse is the getStatusV2 success payload. Both fields are
// nil while no message has arrived.
type StatusResponse struct {
	SMS  *MessageData `json:"sms"`
	Call *CallData    `json:"call"`
}

// MessageData describes a received SMS.
type MessageData struct {
	DateTime string `json:"dateTime"`
	Code     string `json:"code"`
	Text     string `json:"text"`
}

// CallData describes a received voice verification call.
type CallData struct {
	From         string  `json:"from"`
	Text         string  `json:"text"`
	Code         string  `json:"code"`
	DateTime     string  `json:"dateTime"`
	URL          *string `json:"url"`
	ParsingCount int     `json:"parsingCount"`
}

// ActivationStatus is a setStatus action code.
type ActivationStatus int

const (
	StatusRequestAnotherCode ActivationStatus = 3
	StatusFinish             ActivationStatus = 6
	StatusCancel             ActivationStatus = 8
)

// SetStatusResult is the plain-text confirmation setStatus returns.
type SetStatusResult string

const (
	ResultReady      SetStatusResult = "ACCESS_READY"
	ResultRetryGet   SetStatusResult = "ACCESS_RETRY_GET"
	ResultActivation SetStatusResult = "ACCESS_ACTIVATION"
	ResultCancel     SetStatusResult = "ACCESS_CANCEL"
)

// GetNumber rents a number for the country and service.
func (c *Client) GetNumber(ctx context.Context, country int, service string) (*NumberResponse, error) {
	body, err := c.get(ctx, "getNumberV2", url.Values{
		"service": {service},
		"country": {strconv.Itoa(country)},
	})
	if err != nil {
		return nil, err
	}

	var parsed NumberResponse
	if err := decodeBody(body, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// GetStatus polls the activation for a received code.
func (c *Client) GetStatus(ctx context.Context, activationID string) (*StatusResponse, error) {
	body, err := c.get(ctx, "getStatusV2", url.Values{"id": {activationID}})
	if err != nil {
		return nil, err
	}

	var parsed StatusResponse
	if err := decodeBody(body, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// SetStatus reports the activation outcome (finish, cancel, request
// another code).
func (c *Client) SetStatus(ctx context.Context, activationID string, status ActivationStatus) (SetStatusResult, error) {
	body, err := c.get(ctx, "setStatus", url.Values{
		"id":     {activationID},
		"status": {strconv.Itoa(int(status))},
	})
	if err != nil {
		return "", err
	}

	switch result := SetStatusResult(body); result {
	case ResultReady, ResultRetryGet, ResultActivation, ResultCancel:
		return result, nil
	}
	return "", &DecodeError{Raw: body, Err: fmt.Errorf("unexpected setStatus response")}
}

// get performs one API call and returns the trimmed body, already
// screened for error tokens.
func (c *Client) get(ctx context.Context, action string, params url.Values) (string, error) {
	query := url.Values{
		"api_key": {c.apiKey},
		"action":  {action},
	}
	for k, vs := range params {
		for _, v := range vs {
			query.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", &DecodeError{Err: fmt.Errorf("build request: %w", err)}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if resp.StatusCode >= 500 {
		return "", &TransportError{Err: fmt.Errorf("server returned %d", resp.StatusCode)}
	}

	body := strings.TrimSpace(string(raw))
	if apiErr := parseAPIError(body); apiErr != nil {
		return "", apiErr
	}
	return body, nil
}

func decodeBody(body string, v any) error {
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return &DecodeError{Raw: body, Err: err}
	}
	return nil
}
