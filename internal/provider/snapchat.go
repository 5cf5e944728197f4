package provider

import (
	"context"
	"net/http"
	"time"
)

const snapBaseURL = "https://tr.snapchat.com"

// SnapClient delivers events to the Snapchat Conversions API.
type SnapClient struct {
	accessToken string
	baseURL     string
	hc          *http.Client
}

// NewSnapClient creates a Snapchat Conversions API client.
func NewSnapClient(accessToken string) *SnapClient {
	return &SnapClient{accessToken: accessToken, baseURL: snapBaseURL, hc: defaultHTTPClient}
}

// Track sends one event against the given pixel ID.
func (c *SnapClient) Track(ctx context.Context, pixelID, eventName string, payload map[string]any) error {
	body := map[string]any{
		"pixel_id":              pixelID,
		"event_type":            eventName,
		"event_conversion_type": "WEB",
		"timestamp":             time.Now().UnixMilli(),
	}
	for k, v := range payload {
		body[k] = v
	}
	headers := map[string]string{"Authorization": "Bearer " + c.accessToken}
	return postJSON(ctx, c.hc, c.baseURL+"/v2/conversion", headers, body)
}
