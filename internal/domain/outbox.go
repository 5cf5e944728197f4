package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all outbox event types.
type EventType string

const (
	EventPixelInitiateCheckout EventType = "pixel.initiate_checkout.tracked"
	EventPixelAddPaymentInfo   EventType = "pixel.add_payment_info.tracked"
	EventPixelPurchase         EventType = "pixel.purchase.tracked"
	EventPixelAddToCart        EventType = "pixel.add_to_cart.tracked"
	EventOrderSubmitted        EventType = "order.submitted"
	EventSettingsUpdated       EventType = "settings.updated"
	EventFormUpdated           EventType = "form.updated"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateSession AggregateType = "session"
	AggregateOrder   AggregateType = "order"
	AggregateShop    AggregateType = "shop"
)

// OutboxDraft is the payload written to the event_outbox table within the
// request transaction; a poller publishes drafts to Kafka afterwards.
type OutboxDraft struct {
	SeqID         int64           `json:"-"`
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// pixelEventTypes maps canonical events to their outbox event types.
var pixelEventTypes = map[CanonicalEvent]EventType{
	EventInitiateCheckout: EventPixelInitiateCheckout,
	EventAddPaymentInfo:   EventPixelAddPaymentInfo,
	EventPurchase:         EventPixelPurchase,
	EventAddToCart:        EventPixelAddToCart,
}
