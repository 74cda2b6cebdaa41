// Package sms delivers one-time codes through the Twilio Messages REST API.
package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// TwilioConfig holds the credentials for the Messages API.
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	// BaseURL overrides the API host, used in tests.
	BaseURL string
}

// TwilioClient sends SMS through Twilio. With incomplete credentials the
// client reports itself unconfigured and refuses to send; the OTP service
// uses that to decide on the development fallback.
type TwilioClient struct {
	cfg  TwilioConfig
	http *http.Client
}

func NewTwilioClient(cfg TwilioConfig) *TwilioClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &TwilioClient{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether all credentials are present.
func (c *TwilioClient) Configured() bool {
	return c.cfg.AccountSID != "" && c.cfg.AuthToken != "" && c.cfg.FromNumber != ""
}

// Send posts one message to the Twilio Messages endpoint.
func (c *TwilioClient) Send(ctx context.Context, to, body string) error {
	if !c.Configured() {
		return fmt.Errorf("twilio: client not configured")
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.cfg.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.cfg.BaseURL, c.cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio: build request: %w", err)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio: send message: %s", apiError(resp.Body, resp.Status))
	}
	return nil
}

// apiError extracts Twilio's error message, falling back to the HTTP status.
func apiError(body io.Reader, status string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return status
}
