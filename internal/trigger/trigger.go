// Package trigger holds the three independent rules that decide when a
// canonical tracking event fires: field-interaction AddPaymentInfo,
// submission-driven Purchase, and cart-mutation InitiateCheckout/AddToCart.
// Each trigger receives its session state and an event sink by injection;
// trigger failures are logged and swallowed, never surfaced to the shopper.
package trigger

import (
	"context"

	"github.com/easycod/platform/internal/domain"
)

// DispatchFunc is the downstream sink for fired canonical events.
type DispatchFunc func(ctx context.Context, event domain.CanonicalEvent, data domain.EventPayload)
