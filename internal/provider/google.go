package provider

import (
	"context"
	"fmt"
	"net/http"
)

const googleBaseURL = "https://www.google-analytics.com"

// GoogleClient delivers events via the GA4 Measurement Protocol.
type GoogleClient struct {
	apiSecret string
	baseURL   string
	hc        *http.Client
}

// NewGoogleClient creates a GA4 Measurement Protocol client.
func NewGoogleClient(apiSecret string) *GoogleClient {
	return &GoogleClient{apiSecret: apiSecret, baseURL: googleBaseURL, hc: defaultHTTPClient}
}

// Track sends one event against the given measurement ID. The measurement
// protocol requires a client_id; the transaction id serves when present,
// otherwise a fixed server identity.
func (c *GoogleClient) Track(ctx context.Context, measurementID, eventName string, payload map[string]any) error {
	clientID := "easycod.server"
	if tx, ok := payload["transaction_id"].(string); ok && tx != "" {
		clientID = tx
	}

	url := fmt.Sprintf("%s/mp/collect?measurement_id=%s&api_secret=%s", c.baseURL, measurementID, c.apiSecret)
	body := map[string]any{
		"client_id": clientID,
		"events": []map[string]any{{
			"name":   eventName,
			"params": payload,
		}},
	}
	return postJSON(ctx, c.hc, url, nil, body)
}
