// Package provider holds thin HTTP clients for external collaborators: the
// per-ad-platform conversion APIs the pixel dispatcher delivers to, and the
// Shopify Admin API used by the submission flow.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// defaultHTTPClient bounds every conversion API call; dispatch is
// best-effort, so slow platforms get cut off rather than waited on.
var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// postJSON sends a JSON body and fails on any non-2xx response.
func postJSON(ctx context.Context, hc *http.Client, url string, headers map[string]string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("api error (status %d): %s", resp.StatusCode, string(msg))
	}
	return nil
}
