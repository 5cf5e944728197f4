package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const metaBaseURL = "https://graph.facebook.com/v19.0"

// MetaClient delivers events to the Meta Conversions API.
type MetaClient struct {
	accessToken string
	baseURL     string
	hc          *http.Client
}

// NewMetaClient creates a Meta Conversions API client.
func NewMetaClient(accessToken string) *MetaClient {
	return &MetaClient{accessToken: accessToken, baseURL: metaBaseURL, hc: defaultHTTPClient}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *MetaClient) SetBaseURL(u string) { c.baseURL = u }

// Track sends one event against the given pixel ID.
func (c *MetaClient) Track(ctx context.Context, pixelID, eventName string, payload map[string]any) error {
	url := fmt.Sprintf("%s/%s/events?access_token=%s", c.baseURL, pixelID, c.accessToken)
	body := map[string]any{
		"data": []map[string]any{{
			"event_name":    eventName,
			"event_time":    time.Now().Unix(),
			"action_source": "website",
			"custom_data":   payload,
		}},
	}
	return postJSON(ctx, c.hc, url, nil, body)
}
