package domain

// CanonicalEvent is one of the four tracking-lifecycle moments that every
// supported ad platform is mapped onto. The enumeration is fixed; platforms
// that do not support an event simply have no mapping for it.
type CanonicalEvent string

const (
	EventInitiateCheckout CanonicalEvent = "InitiateCheckout"
	EventAddPaymentInfo   CanonicalEvent = "AddPaymentInfo"
	EventPurchase         CanonicalEvent = "Purchase"
	EventAddToCart        CanonicalEvent = "AddToCart"
)

// CanonicalEvents lists all canonical events in dispatch order.
func CanonicalEvents() []CanonicalEvent {
	return []CanonicalEvent{
		EventInitiateCheckout,
		EventAddPaymentInfo,
		EventPurchase,
		EventAddToCart,
	}
}

// ContentItem is one line of an event's contents list.
type ContentItem struct {
	ID        string  `json:"id"`
	Quantity  int     `json:"quantity"`
	ItemPrice float64 `json:"item_price"`
	Name      string  `json:"name"`
}

// EventPayload is the canonical payload shared across all platform payload
// builders for one event occurrence. All fields are optional; not every
// platform uses every field. Monetary values are minor-unit-free decimals
// (19.99, never 1999) - cents-based sources must be converted exactly once
// before the payload is constructed.
type EventPayload struct {
	ContentIDs    []string      `json:"content_ids,omitempty"`
	Contents      []ContentItem `json:"contents,omitempty"`
	Currency      string        `json:"currency,omitempty"`
	Value         float64       `json:"value,omitempty"`
	NumItems      int           `json:"num_items,omitempty"`
	TransactionID string        `json:"transaction_id,omitempty"`
	FieldName     string        `json:"field_name,omitempty"`
}
