package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const pinterestBaseURL = "https://api.pinterest.com/v5"

// PinterestClient delivers events to the Pinterest Conversions API.
type PinterestClient struct {
	accessToken string
	baseURL     string
	hc          *http.Client
}

// NewPinterestClient creates a Pinterest Conversions API client.
func NewPinterestClient(accessToken string) *PinterestClient {
	return &PinterestClient{accessToken: accessToken, baseURL: pinterestBaseURL, hc: defaultHTTPClient}
}

// Track sends one event against the given ad account / tag ID.
func (c *PinterestClient) Track(ctx context.Context, tagID, eventName string, payload map[string]any) error {
	url := fmt.Sprintf("%s/ad_accounts/%s/events", c.baseURL, tagID)
	body := map[string]any{
		"data": []map[string]any{{
			"event_name":    eventName,
			"action_source": "web",
			"event_time":    time.Now().Unix(),
			"custom_data":   payload,
		}},
	}
	headers := map[string]string{"Authorization": "Bearer " + c.accessToken}
	return postJSON(ctx, c.hc, url, headers, body)
}
