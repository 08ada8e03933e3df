// Package payment implements the payment collaborator contract against a
// Stripe-style charges API.
package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sliceco/config"
	"sliceco/internal/domain/service"

	"github.com/pkg/errors"
)

// Client submits charges as form-encoded POSTs authenticated with the
// account's secret key. Any non-200 status or transport error is a definite
// failure; the API models no pending state.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient is the constructor for the payment client.
// It returns the implementation as a service.PaymentGateway interface.
func NewClient(cfg *config.Config) service.PaymentGateway {
	return &Client{
		baseURL:    cfg.Stripe.BaseURL,
		secretKey:  cfg.Stripe.SecretKey,
		httpClient: &http.Client{},
	}
}

// Charge submits a payment and returns the gateway's charge reference.
func (c *Client) Charge(ctx context.Context, input service.ChargeInput) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(input.Amount, 10))
	form.Set("currency", strings.ToLower(input.Currency))
	form.Set("source", input.Source)
	form.Set("receipt_email", input.ReceiptEmail)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to build charge request")
	}
	req.SetBasicAuth(c.secretKey, "")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "charge request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("charge rejected with status %d", resp.StatusCode)
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", errors.Wrap(err, "failed to decode charge response")
	}
	if body.ID == "" {
		return "", errors.New("charge response carried no id")
	}

	return body.ID, nil
}
