package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"takeout_manager/model"
)

// Client talks to the push gateway over HTTP. It satisfies Pusher.
type Client struct {
	// BaseURL is the API root, e.g. http://host:8002/api/v1.
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

func (c *Client) Send(ctx context.Context, sub model.PushSubscription, payload model.PushPayload) error {
	body := map[string]any{
		"subscription": map[string]any{
			"endpoint": sub.Endpoint,
			"keys": map[string]string{
				"p256dh": sub.P256dh,
				"auth":   sub.Auth,
			},
		},
		"payload": payload,
	}
	return c.post(ctx, "/push/send", body)
}

func (c *Client) Broadcast(ctx context.Context, payload model.PushPayload) error {
	return c.post(ctx, "/push/broadcast", map[string]any{"payload": payload})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("push gateway returned %d", resp.StatusCode)
	}
	return nil
}
