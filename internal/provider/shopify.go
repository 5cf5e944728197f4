package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// ShopifyClient wraps the Shopify Admin API calls the submission flow needs.
// Order business logic (risk scoring, fulfillment) stays on Shopify's side;
// this client only creates the COD order and reads back its totals.
type ShopifyClient struct {
	accessToken string
	apiVersion  string
	// scheme is overridable for tests ("http" against httptest servers).
	scheme string
	hc     *http.Client
}

// NewShopifyClient creates an Admin API client.
func NewShopifyClient(accessToken, apiVersion string) *ShopifyClient {
	return &ShopifyClient{
		accessToken: accessToken,
		apiVersion:  apiVersion,
		scheme:      "https",
		hc:          &http.Client{Timeout: 15 * time.Second},
	}
}

// OrderLineItem is one order line sent to Shopify.
type OrderLineItem struct {
	VariantID int64 `json:"variant_id,omitempty"`
	Quantity  int   `json:"quantity"`
	// PriceCents is used when no variant backs the line.
	PriceCents int64  `json:"-"`
	Title      string `json:"title,omitempty"`
	Price      string `json:"price,omitempty"`
}

// OrderCustomer identifies the shopper on the created order.
type OrderCustomer struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// OrderAddress is the COD shipping address.
type OrderAddress struct {
	Address1 string `json:"address1,omitempty"`
	City     string `json:"city,omitempty"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// OrderInput is the order-creation request.
type OrderInput struct {
	LineItems       []OrderLineItem
	Customer        OrderCustomer
	ShippingAddress OrderAddress
	ShippingCents   int64
	Currency        string
	Note            string
}

// OrderResult is the subset of the created order the caller consumes. The
// totals here are authoritative for purchase tracking.
type OrderResult struct {
	ID         int64
	Name       string
	TotalPrice float64
	Currency   string
	StatusURL  string
}

// CreateOrder creates a pending cash-on-delivery order on the given shop.
func (c *ShopifyClient) CreateOrder(ctx context.Context, shop string, in OrderInput) (*OrderResult, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("shopify access token not configured")
	}

	lines := make([]map[string]any, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		line := map[string]any{"quantity": li.Quantity}
		if li.VariantID != 0 {
			line["variant_id"] = li.VariantID
		} else {
			line["title"] = li.Title
			line["price"] = fmt.Sprintf("%d.%02d", li.PriceCents/100, li.PriceCents%100)
		}
		lines = append(lines, line)
	}

	order := map[string]any{
		"line_items":       lines,
		"customer":         in.Customer,
		"shipping_address": in.ShippingAddress,
		"financial_status": "pending",
		"tags":             "cod,easycod",
		"note":             in.Note,
		"shipping_lines": []map[string]any{{
			"title": "Cash on delivery",
			"price": fmt.Sprintf("%d.%02d", in.ShippingCents/100, in.ShippingCents%100),
			"code":  "COD",
		}},
	}
	if in.Currency != "" {
		order["currency"] = in.Currency
	}

	raw, err := json.Marshal(map[string]any{"order": order})
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	url := fmt.Sprintf("%s://%s/admin/api/%s/orders.json", c.scheme, shop, c.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("shopify error (status %d): %s", resp.StatusCode, string(body))
	}

	var decoded struct {
		Order struct {
			ID         int64  `json:"id"`
			Name       string `json:"name"`
			TotalPrice string `json:"total_price"`
			Currency   string `json:"currency"`
			StatusURL  string `json:"order_status_url"`
		} `json:"order"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode shopify response: %w", err)
	}

	total, err := strconv.ParseFloat(decoded.Order.TotalPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("parse order total %q: %w", decoded.Order.TotalPrice, err)
	}

	return &OrderResult{
		ID:         decoded.Order.ID,
		Name:       decoded.Order.Name,
		TotalPrice: total,
		Currency:   decoded.Order.Currency,
		StatusURL:  decoded.Order.StatusURL,
	}, nil
}
