package provider

import (
	"context"
	"net/http"
)

const kwaiBaseURL = "https://www.adsnebula.com"

// KwaiClient delivers events to the Kwai for Business event API.
type KwaiClient struct {
	accessToken string
	baseURL     string
	hc          *http.Client
}

// NewKwaiClient creates a Kwai event API client.
func NewKwaiClient(accessToken string) *KwaiClient {
	return &KwaiClient{accessToken: accessToken, baseURL: kwaiBaseURL, hc: defaultHTTPClient}
}

// Track sends one event against the given pixel ID.
func (c *KwaiClient) Track(ctx context.Context, pixelID, eventName string, payload map[string]any) error {
	body := map[string]any{
		"pixelId":    pixelID,
		"event_name": eventName,
		"properties": payload,
	}
	headers := map[string]string{"Access-Token": c.accessToken}
	return postJSON(ctx, c.hc, c.baseURL+"/log/common/api", headers, body)
}
