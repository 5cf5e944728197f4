package provider

import (
	"context"
	"net/http"
)

const criteoBaseURL = "https://api.criteo.com"

// CriteoClient delivers events to Criteo's server-side events endpoint.
type CriteoClient struct {
	apiKey  string
	baseURL string
	hc      *http.Client
}

// NewCriteoClient creates a Criteo events client.
func NewCriteoClient(apiKey string) *CriteoClient {
	return &CriteoClient{apiKey: apiKey, baseURL: criteoBaseURL, hc: defaultHTTPClient}
}

// Track sends one event against the given account ID.
func (c *CriteoClient) Track(ctx context.Context, accountID, eventName string, payload map[string]any) error {
	body := map[string]any{
		"account": accountID,
		"events": []map[string]any{{
			"event": eventName,
			"data":  payload,
		}},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}
	return postJSON(ctx, c.hc, c.baseURL+"/2024-01/events", headers, body)
}
