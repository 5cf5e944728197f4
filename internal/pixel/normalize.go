package pixel

import (
	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/infra"
)

// PurchasePayload builds the canonical payload for a completed order. The
// transaction id and monetary value come from the submission result - the
// order-creation response is authoritative and is never recomputed from cart
// contents.
func PurchasePayload(result domain.SubmissionResult, cart domain.CartSnapshot) domain.EventPayload {
	ids, contents := normalizeContents(cart)
	return domain.EventPayload{
		TransactionID: result.OrderID,
		Currency:      result.PurchaseData.Currency,
		Value:         result.PurchaseData.Value,
		ContentIDs:    ids,
		Contents:      contents,
		NumItems:      cart.ItemCount(),
	}
}

// PaymentInfoPayload builds a best-effort payload for the field-interaction
// AddPaymentInfo event. Order value may be incomplete at interaction time;
// whatever the session's cart snapshot holds is used.
func PaymentInfoPayload(fieldName string, cart *domain.CartSnapshot) domain.EventPayload {
	p := domain.EventPayload{FieldName: fieldName}
	if cart == nil {
		return p
	}
	ids, contents := normalizeContents(*cart)
	p.ContentIDs = ids
	p.Contents = contents
	p.Currency = cart.Currency
	p.Value = infra.CentsToDecimal(cart.TotalCents)
	p.NumItems = cart.ItemCount()
	return p
}

// CartPayload builds the canonical payload for cart-driven events
// (InitiateCheckout, AddToCart).
func CartPayload(cart domain.CartSnapshot) domain.EventPayload {
	ids, contents := normalizeContents(cart)
	return domain.EventPayload{
		ContentIDs: ids,
		Contents:   contents,
		Currency:   cart.Currency,
		Value:      infra.CentsToDecimal(cart.TotalCents),
		NumItems:   cart.ItemCount(),
	}
}

// normalizeContents converts cart lines to payload contents. This is the one
// place cents become decimals.
func normalizeContents(cart domain.CartSnapshot) ([]string, []domain.ContentItem) {
	if len(cart.Items) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(cart.Items))
	contents := make([]domain.ContentItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ID)
		contents = append(contents, domain.ContentItem{
			ID:        it.ID,
			Quantity:  it.Quantity,
			ItemPrice: infra.CentsToDecimal(it.PriceCents),
			Name:      it.Name,
		})
	}
	return ids, contents
}
