package trigger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/pixel"
	"github.com/easycod/platform/internal/session"
)

// paymentKeywords marks form fields whose edits signal payment-info entry.
// Matched case-insensitively as substrings of the field name.
var paymentKeywords = []string{
	"email", "phone", "name", "address", "city", "zip",
	"billing", "shipping", "contact",
}

// trackableFieldTypes are the input types that count as typed interaction.
var trackableFieldTypes = map[string]bool{
	"text":  true,
	"email": true,
	"tel":   true,
}

// PaymentInfo fires AddPaymentInfo the first time a shopper edits a
// payment-adjacent field in a session. A session-scoped flag caps it at one
// fire per session no matter how many matching fields are edited; the
// read-then-set window can double-fire under concurrent edits, which is an
// accepted over-count.
type PaymentInfo struct {
	store  session.Store
	logger *slog.Logger
}

// NewPaymentInfo creates the field-interaction trigger.
func NewPaymentInfo(store session.Store, logger *slog.Logger) *PaymentInfo {
	return &PaymentInfo{store: store, logger: logger}
}

// FieldEdited evaluates one field interaction and fires at most once per
// session through dispatch.
func (t *PaymentInfo) FieldEdited(ctx context.Context, sessionID, fieldName, fieldType string, dispatch DispatchFunc) {
	if !trackableFieldTypes[fieldType] {
		return
	}
	if !matchesPaymentKeyword(fieldName) {
		return
	}

	tracked, err := t.store.Flag(ctx, sessionID, session.FlagAddPaymentInfo)
	if err != nil {
		t.logger.Warn("payment-info flag read failed", "session_id", sessionID, "error", err)
		return
	}
	if tracked {
		return
	}

	if err := t.store.SetFlag(ctx, sessionID, session.FlagAddPaymentInfo); err != nil {
		t.logger.Warn("payment-info flag write failed", "session_id", sessionID, "error", err)
		// Fall through: losing the flag risks an over-count, not a miss.
	}

	cart, err := t.store.Cart(ctx, sessionID)
	if err != nil {
		t.logger.Warn("payment-info cart read failed", "session_id", sessionID, "error", err)
		cart = nil
	}

	dispatch(ctx, domain.EventAddPaymentInfo, pixel.PaymentInfoPayload(fieldName, cart))
}

func matchesPaymentKeyword(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	for _, kw := range paymentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
