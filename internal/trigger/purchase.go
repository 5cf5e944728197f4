package trigger

import (
	"context"
	"log/slog"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/pixel"
)

// Purchase fires exactly once per successful form submission. The canonical
// payload carries the authoritative transaction id and monetary value from
// the order-creation response; nothing is client-guessed. Every success path
// fires, including submissions that end in a redirect to a thank-you page.
type Purchase struct {
	logger *slog.Logger
}

// NewPurchase creates the submission trigger.
func NewPurchase(logger *slog.Logger) *Purchase {
	return &Purchase{logger: logger}
}

// SubmissionCompleted fires Purchase when the submission result signals
// success and carries order data.
func (t *Purchase) SubmissionCompleted(ctx context.Context, result domain.SubmissionResult, cart domain.CartSnapshot, dispatch DispatchFunc) {
	if !result.Success {
		return
	}
	if result.OrderID == "" {
		t.logger.Warn("purchase trigger skipped: success result without order id")
		return
	}

	dispatch(ctx, domain.EventPurchase, pixel.PurchasePayload(result, cart))
}
