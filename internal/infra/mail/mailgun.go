// Package mail implements the notification collaborator contract against a
// Mailgun-style messages API.
package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"sliceco/config"
	"sliceco/internal/domain/service"

	"github.com/pkg/errors"
)

// Client sends messages as form-encoded POSTs to the domain's messages
// endpoint. Any non-200 status or transport error is a definite failure.
type Client struct {
	baseURL    string
	apiKey     string
	domain     string
	httpClient *http.Client
}

// NewClient is the constructor for the mail client.
// It returns the implementation as a service.MailGateway interface.
func NewClient(cfg *config.Config) service.MailGateway {
	return &Client{
		baseURL:    cfg.Mailgun.BaseURL,
		apiKey:     cfg.Mailgun.APIKey,
		domain:     cfg.Mailgun.Domain,
		httpClient: &http.Client{},
	}
}

// Send delivers an email and returns the gateway's message reference.
func (c *Client) Send(ctx context.Context, to, subject, body string) (string, error) {
	form := url.Values{}
	form.Set("from", "admin@"+c.domain)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("text", body)

	endpoint := strings.TrimSuffix(c.baseURL, "/") + "/" + c.domain + "/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to build mail request")
	}
	req.SetBasicAuth("api", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "mail request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("mail rejected with status %d", resp.StatusCode)
	}

	var respBody struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return "", errors.Wrap(err, "failed to decode mail response")
	}
	if respBody.ID == "" {
		return "", errors.New("mail response carried no id")
	}

	return respBody.ID, nil
}
