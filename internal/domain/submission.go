package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CartItem is one storefront line item as reported by the form renderer.
// Prices arrive in minor units (cents) and are converted to decimals exactly
// once, when an event payload is normalized.
type CartItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// CartSnapshot is the renderer's view of the cart at one point in time.
type CartSnapshot struct {
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	Currency   string     `json:"currency"`
}

// Empty reports whether the snapshot holds no items.
func (c CartSnapshot) Empty() bool {
	return len(c.Items) == 0
}

// ItemCount sums line-item quantities.
func (c CartSnapshot) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// SubmissionStatus tracks the lifecycle of a stored submission.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionConfirmed SubmissionStatus = "confirmed"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission is a persisted checkout form submission.
type Submission struct {
	ID         uuid.UUID        `json:"id"`
	ShopDomain string           `json:"shop_domain"`
	SessionID  string           `json:"session_id"`
	OrderID    string           `json:"order_id,omitempty"`
	Status     SubmissionStatus `json:"status"`
	Values     json.RawMessage  `json:"values"`
	TotalCents int64            `json:"total_cents"`
	Currency   string           `json:"currency"`
	CreatedAt  time.Time        `json:"created_at"`
}

// PurchaseData carries the authoritative monetary outcome of an accepted
// order, sourced from the order-creation response and never recomputed.
type PurchaseData struct {
	Currency string  `json:"currency"`
	Value    float64 `json:"value"`
}

// SubmissionResult is the submit endpoint's response contract. The Purchase
// trigger consumes it verbatim.
type SubmissionResult struct {
	Success      bool         `json:"success"`
	OrderID      string       `json:"orderId,omitempty"`
	PurchaseData PurchaseData `json:"purchaseData"`
	RedirectURL  string       `json:"redirectUrl,omitempty"`
}
