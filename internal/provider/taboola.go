package provider

import (
	"context"
	"net/http"
)

const taboolaBaseURL = "https://trc.taboola.com"

// TaboolaClient delivers events to Taboola's server-to-server action
// endpoint. The adapter table already shapes the payload as Taboola's
// notify envelope; the client posts it as-is.
type TaboolaClient struct {
	apiKey  string
	baseURL string
	hc      *http.Client
}

// NewTaboolaClient creates a Taboola s2s client.
func NewTaboolaClient(apiKey string) *TaboolaClient {
	return &TaboolaClient{apiKey: apiKey, baseURL: taboolaBaseURL, hc: defaultHTTPClient}
}

// Track sends one envelope against the given account ID.
func (c *TaboolaClient) Track(ctx context.Context, accountID, _ string, payload map[string]any) error {
	body := map[string]any{
		"account": accountID,
	}
	for k, v := range payload {
		body[k] = v
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	return postJSON(ctx, c.hc, c.baseURL+"/actions-handler/log/3/s2s-action", headers, body)
}
