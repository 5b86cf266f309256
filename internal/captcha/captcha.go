// Package captcha verifies citizen-submitted tokens against a
// siteverify-style endpoint before any response is recorded. The store
// never re-checks; verification belongs to the action boundary.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Verifier checks a client-supplied captcha token.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// Client talks to the verification endpoint. With no secret configured
// it passes everything, matching local development where the widget is
// disabled.
type Client struct {
	secret    string
	verifyURL string
	http      *http.Client
}

func NewClient() *Client {
	verifyURL := os.Getenv("CAPTCHA_VERIFY_URL")
	if verifyURL == "" {
		verifyURL = defaultVerifyURL
	}
	return &Client{
		secret:    os.Getenv("CAPTCHA_SECRET"),
		verifyURL: verifyURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	if c.secret == "" {
		return true, nil
	}
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("build captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("verify captcha: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("decode captcha response: %w", err)
	}
	return body.Success, nil
}
