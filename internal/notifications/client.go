// Package notifications pushes a short ntfy message when an adjustment is
// accepted, mirroring the confirmation the warehouse staff used to get on
// screen. Delivery is best effort: a failed push is logged and dropped,
// never folded into the transaction outcome.
package notifications

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aaron-stalmic/countsheet/internal/ledger"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	topic      string
	enabled    bool
}

func NewClient(baseURL, topic string, enabled bool) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		topic:      topic,
		enabled:    enabled,
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// NotifyAdjustment announces one accepted ledger entry.
func (c *Client) NotifyAdjustment(ctx context.Context, warehouse string, e ledger.Entry) {
	if !c.Enabled() {
		return
	}

	verb := "added to"
	amount := e.Amount
	if amount < 0 {
		verb = "removed from"
		amount = -amount
	}
	message := fmt.Sprintf("%s: %d %s %q", warehouse, amount, verb, e.Item)
	if e.Reason != "" {
		message += " (" + e.Reason + ")"
	}

	if err := c.send(ctx, message); err != nil {
		log.Warn().Err(err).Str("item", e.Item).Msg("Failed to send notification")
		return
	}
	log.Debug().Str("item", e.Item).Msg("Sent adjustment notification")
}

func (c *Client) send(ctx context.Context, message string) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, c.topic)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBufferString(message))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return nil
}
