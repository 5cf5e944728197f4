package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// NewPixelTrackedEvent records one fired canonical event for the audit and
// analytics pipeline. It is an after-the-fact record, not a delivery queue:
// platform delivery stays fire-and-forget.
func NewPixelTrackedEvent(shop, sessionID string, event CanonicalEvent, data EventPayload) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"shop":       shop,
		"session_id": sessionID,
		"event":      event,
		"data":       data,
	})
	headers, _ := json.Marshal(map[string]string{"shop": shop})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateSession,
		AggregateID:   sessionID,
		EventType:     pixelEventTypes[event],
		PartitionKey:  sessionID,
		Headers:       headers,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewOrderSubmittedEvent records an accepted COD order submission.
func NewOrderSubmittedEvent(shop string, sub *Submission) OutboxDraft {
	payload, _ := json.Marshal(sub)
	headers, _ := json.Marshal(map[string]string{"shop": shop})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateOrder,
		AggregateID:   sub.ID.String(),
		EventType:     EventOrderSubmitted,
		PartitionKey:  sub.ShopDomain,
		Headers:       headers,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewSettingsUpdatedEvent records an admin change to pixel settings.
func NewSettingsUpdatedEvent(shop string, settings *PixelSettings) OutboxDraft {
	payload, _ := json.Marshal(settings)
	headers, _ := json.Marshal(map[string]string{"shop": shop})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateShop,
		AggregateID:   shop,
		EventType:     EventSettingsUpdated,
		PartitionKey:  shop,
		Headers:       headers,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}

// NewFormUpdatedEvent records an admin change to the form config.
func NewFormUpdatedEvent(shop string, config *FormConfig) OutboxDraft {
	payload, _ := json.Marshal(config)
	headers, _ := json.Marshal(map[string]string{"shop": shop})
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: AggregateShop,
		AggregateID:   shop,
		EventType:     EventFormUpdated,
		PartitionKey:  shop,
		Headers:       headers,
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
