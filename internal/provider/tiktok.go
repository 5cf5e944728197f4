package provider

import (
	"context"
	"net/http"
	"time"
)

const tiktokBaseURL = "https://business-api.tiktok.com/open_api/v1.3"

// TiktokClient delivers events to the TikTok Events API.
type TiktokClient struct {
	accessToken string
	baseURL     string
	hc          *http.Client
}

// NewTiktokClient creates a TikTok Events API client.
func NewTiktokClient(accessToken string) *TiktokClient {
	return &TiktokClient{accessToken: accessToken, baseURL: tiktokBaseURL, hc: defaultHTTPClient}
}

// Track sends one event against the given pixel code. The adapter table puts
// a synthetic event_id in the payload; it is lifted to the envelope so
// TikTok deduplicates against any browser-side pixel.
func (c *TiktokClient) Track(ctx context.Context, pixelCode, eventName string, payload map[string]any) error {
	properties := make(map[string]any, len(payload))
	var eventID any
	for k, v := range payload {
		if k == "event_id" {
			eventID = v
			continue
		}
		properties[k] = v
	}

	event := map[string]any{
		"event":      eventName,
		"event_time": time.Now().Unix(),
		"properties": properties,
	}
	if eventID != nil {
		event["event_id"] = eventID
	}

	body := map[string]any{
		"event_source":    "web",
		"event_source_id": pixelCode,
		"data":            []map[string]any{event},
	}
	headers := map[string]string{"Access-Token": c.accessToken}
	return postJSON(ctx, c.hc, c.baseURL+"/event/track/", headers, body)
}
