// Package whatsapp sends customer messages through an Evolution API
// instance, the self-hosted WhatsApp gateway the tenants already run.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"flowlog/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Config carries the Evolution API connection settings.
type Config struct {
	// BaseURL is the Evolution API root, e.g. "https://evo.example.com".
	BaseURL string
	// Instance is the connected WhatsApp instance name.
	Instance string
	// APIKey authenticates requests via the "apikey" header.
	APIKey string
	// Timeout bounds one send round-trip; zero means defaultTimeout.
	Timeout time.Duration
}

// Client implements MessageClient over the Evolution API sendText endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a client from the given settings.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
	}
}

type sendTextPayload struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

type sendTextResponse struct {
	Key struct {
		ID string `json:"id"`
	} `json:"key"`
}

// SendText delivers one rendered message to the normalized phone number.
// Any non-2xx response is returned as an error; the dispatch worker treats
// it as a transient failure and retries with backoff.
func (c *Client) SendText(ctx context.Context, phone string, message string) (ports.SendReceipt, error) {
	if c.cfg.BaseURL == "" || c.cfg.Instance == "" {
		return ports.SendReceipt{}, fmt.Errorf("whatsapp client not configured")
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/message/sendText/" + c.cfg.Instance

	body, err := json.Marshal(sendTextPayload{Number: phone, Text: message})
	if err != nil {
		return ports.SendReceipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return ports.SendReceipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.SendReceipt{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, readErr := io.ReadAll(io.LimitReader(resp.Body, 512))
		if readErr != nil {
			return ports.SendReceipt{}, fmt.Errorf("evolution api: %s", resp.Status)
		}
		return ports.SendReceipt{}, fmt.Errorf("evolution api: %s: %s", resp.Status, string(detail))
	}

	var out sendTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ports.SendReceipt{}, err
	}

	return ports.SendReceipt{ProviderMessageID: out.Key.ID}, nil
}
