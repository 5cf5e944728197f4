package trigger

import (
	"context"
	"log/slog"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/pixel"
	"github.com/easycod/platform/internal/session"
)

// Cart fires checkout-funnel events from explicit cart-mutation snapshots
// sent by the storefront renderer. InitiateCheckout fires once per session on
// the first non-empty cart observation (first-seen flag); AddToCart fires
// whenever total price or item count strictly increases versus the previous
// snapshot (monotonic-increase diff). Decreases and reloads of an unchanged
// cart fire nothing.
type Cart struct {
	store  session.Store
	logger *slog.Logger
}

// NewCart creates the cart-mutation trigger.
func NewCart(store session.Store, logger *slog.Logger) *Cart {
	return &Cart{store: store, logger: logger}
}

// SnapshotReceived diffs one cart snapshot against the session's previous
// one and fires the applicable events through dispatch.
func (t *Cart) SnapshotReceived(ctx context.Context, sessionID string, snap domain.CartSnapshot, dispatch DispatchFunc) {
	prev, err := t.store.Cart(ctx, sessionID)
	if err != nil {
		t.logger.Warn("cart snapshot read failed", "session_id", sessionID, "error", err)
		return
	}

	if !snap.Empty() {
		seen, err := t.store.Flag(ctx, sessionID, session.FlagInitiateCheckout)
		if err != nil {
			t.logger.Warn("initiate-checkout flag read failed", "session_id", sessionID, "error", err)
		} else if !seen {
			if err := t.store.SetFlag(ctx, sessionID, session.FlagInitiateCheckout); err != nil {
				t.logger.Warn("initiate-checkout flag write failed", "session_id", sessionID, "error", err)
			}
			dispatch(ctx, domain.EventInitiateCheckout, pixel.CartPayload(snap))
		}
	}

	if prev != nil && cartGrew(*prev, snap) {
		dispatch(ctx, domain.EventAddToCart, pixel.CartPayload(snap))
	}

	if err := t.store.SaveCart(ctx, sessionID, snap); err != nil {
		t.logger.Warn("cart snapshot save failed", "session_id", sessionID, "error", err)
	}
}

// cartGrew reports whether the new snapshot increased in value or quantity.
func cartGrew(prev, next domain.CartSnapshot) bool {
	return next.TotalCents > prev.TotalCents || next.ItemCount() > prev.ItemCount()
}
