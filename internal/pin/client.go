// Package pin is a thin client for the Pin Payments charges endpoint.
// It only speaks transport: one synchronous POST per call, no retries.
// Business meaning of a failure is left to the caller.
package pin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient wires a client against the given API root
// (e.g. https://test-api.pin.net.au/1). The *http.Client carries the
// timeout policy; pass http.DefaultClient only in tests.
func NewClient(baseURL, secretKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		httpClient: httpClient,
	}
}

// ChargeRequest is the wire payload for POST /charges. Amount is in minor
// currency units (cents).
type ChargeRequest struct {
	Email       string `json:"email"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	IPAddress   string `json:"ip_address"`
	CardToken   string `json:"card_token"`
}

// Charge is the "response" object Pin returns on success.
type Charge struct {
	Token       string `json:"token"`
	Success     bool   `json:"success"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Email       string `json:"email"`
}

type chargeEnvelope struct {
	Response *Charge `json:"response"`

	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// RequestError is returned when Pin answers but does not include a charge.
// Its detail is meant for logs, not for end users.
type RequestError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("pin: charge request failed (status %v, error %q): %v", e.StatusCode, e.Code, e.Description)
}

// CreateCharge posts a single charge attempt. A response without the
// "response" envelope is a failure regardless of status code.
func (c *Client) CreateCharge(ctx context.Context, charge ChargeRequest) (Charge, error) {
	payload, err := json.Marshal(charge)
	if err != nil {
		return Charge{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(payload))
	if err != nil {
		return Charge{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Charge{}, fmt.Errorf("c.httpClient.Do -> %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Charge{}, fmt.Errorf("io.ReadAll -> %w", err)
	}

	var envelope chargeEnvelope
	if err = json.Unmarshal(body, &envelope); err != nil {
		return Charge{}, &RequestError{
			StatusCode:  resp.StatusCode,
			Description: fmt.Sprintf("unparseable response body: %v", err),
		}
	}

	if envelope.Response == nil {
		return Charge{}, &RequestError{
			StatusCode:  resp.StatusCode,
			Code:        envelope.Error,
			Description: envelope.ErrorDescription,
		}
	}

	return *envelope.Response, nil
}
