package pixel

import (
	"fmt"
	"time"

	"github.com/easycod/platform/internal/domain"
)

// BuildAdapters constructs the adapter table for one dispatch pass. Only
// platforms with a configured pixel ID are included. The Facebook Purchase
// event name is resolved here, once, from current settings.
func BuildAdapters(settings *domain.PixelSettings, reg Registry) []Adapter {
	if settings == nil {
		return nil
	}

	var table []Adapter

	if settings.FacebookPixelID != "" {
		purchaseName := domain.FbPurchaseStandard
		if settings.FbPurchaseEvent == domain.FbPurchaseCustom {
			purchaseName = "CustomPurchase"
		}
		table = append(table, Adapter{
			Platform: PlatformFacebook,
			Tracker:  reg[PlatformFacebook],
			Events: map[domain.CanonicalEvent]string{
				domain.EventInitiateCheckout: "InitiateCheckout",
				domain.EventAddPaymentInfo:   "AddPaymentInfo",
				domain.EventPurchase:         purchaseName,
				domain.EventAddToCart:        "AddToCart",
			},
			Payload: passthroughPayload,
			Conditions: map[domain.CanonicalEvent]func() bool{
				domain.EventAddPaymentInfo: func() bool { return settings.SendFbAddPaymentInfo },
				domain.EventAddToCart:      func() bool { return settings.SendFbAddToCart },
			},
		})
	}

	if settings.SnapPixelID != "" {
		table = append(table, Adapter{
			Platform: PlatformSnapchat,
			Tracker:  reg[PlatformSnapchat],
			Events: map[domain.CanonicalEvent]string{
				domain.EventInitiateCheckout: "START_CHECKOUT",
				domain.EventAddPaymentInfo:   "ADD_BILLING",
				domain.EventPurchase:         "PURCHASE",
				domain.EventAddToCart:        "ADD_CART",
			},
			Payload: snapPayload,
			Conditions: map[domain.CanonicalEvent]func() bool{
				domain.EventAddToCart: func() bool { return settings.SendSnapAddToCart },
			},
		})
	}

	if settings.GoogleTagID != "" {
		table = append(table, Adapter{
			Platform: PlatformGoogle,
			Tracker:  reg[PlatformGoogle],
			Events: map[domain.CanonicalEvent]string{
				domain.EventInitiateCheckout: "begin_checkout",
				domain.EventAddPaymentInfo:   "add_payment_info",
				domain.EventPurchase:         "purchase",
				domain.EventAddToCart:        "add_to_cart",
			},
			Payload: googlePayload,
		})
	}

	if settings.TiktokPixelID != "" {
		table = append(table, Adapter{
			Platform: PlatformTiktok,
			Tracker:  reg[PlatformTiktok],
			Events: map[domain.CanonicalEvent]string{
				domain.EventInitiateCheckout: "InitiateCheckout",
				domain.EventAddPaymentInfo:   "AddPaymentInfo",
				domain.EventPurchase:         "CompletePayment",
				domain.EventAddToCart:        "AddToCart",
			},
			Payload: tiktokPayload,
			Conditions: map[domain.CanonicalEvent]func() bool{
				domain.EventAddToCart: func() bool { return settings.SendTiktokAddToCart },
			},
		})
	}

	if settings.KwaiPixelID != "" {
		table = append(table, Adapter{
			Platform: PlatformKwai,
			Tracker:  reg[PlatformKwai],
			// Kwai has no payment-info event.
			Events: map[domain.CanonicalEvent]string{
				domain.EventInitiateCheckout: "EVENT_INITIATED_CHECKOUT",
				domain.EventPurchase:         "EVENT_PURCHASE",
				domain.EventAddToCart:        "EVENT_ADD_TO_CART",
			},
			Payload: passthroughPayload,
		})
	}

	if settings.CriteoAccountID != "" {
		table = append(table, Adapter{
			Platform: PlatformCriteo,
			Tracker:  reg[PlatformCriteo],
			// Criteo only models basket view and transaction.
			Events: map[domain.CanonicalEvent]string{
				domain.EventInitiateCheckout: "viewBasket",
				domain.EventPurchase:         "trackTransaction",
			},
			Payload: criteoPayload,
		})
	}

	if settings.PinterestTagID != "" {
		table = append(table, Adapter{
			Platform: PlatformPinterest,
			Tracker:  reg[PlatformPinterest],
			// Pinterest "checkout" is its purchase event.
			Events: map[domain.CanonicalEvent]string{
				domain.EventPurchase:  "checkout",
				domain.EventAddToCart: "addtocart",
			},
			Payload: pinterestPayload,
		})
	}

	if settings.TaboolaAccountID != "" {
		table = append(table, Adapter{
			Platform: PlatformTaboola,
			Tracker:  reg[PlatformTaboola],
			Events: map[domain.CanonicalEvent]string{
				domain.EventInitiateCheckout: "start_checkout",
				domain.EventAddPaymentInfo:   "add_payment_info",
				domain.EventPurchase:         "make_purchase",
				domain.EventAddToCart:        "add_to_cart",
			},
			Payload: taboolaPayload,
		})
	}

	return table
}

// passthroughPayload forwards the canonical payload unchanged.
func passthroughPayload(data domain.EventPayload, _ string) map[string]any {
	p := map[string]any{}
	if len(data.ContentIDs) > 0 {
		p["content_ids"] = append([]string(nil), data.ContentIDs...)
	}
	if len(data.Contents) > 0 {
		contents := make([]map[string]any, 0, len(data.Contents))
		for _, c := range data.Contents {
			contents = append(contents, map[string]any{
				"id":         c.ID,
				"quantity":   c.Quantity,
				"item_price": c.ItemPrice,
				"name":       c.Name,
			})
		}
		p["contents"] = contents
	}
	if data.Currency != "" {
		p["currency"] = data.Currency
	}
	if data.Value != 0 {
		p["value"] = data.Value
	}
	if data.NumItems != 0 {
		p["num_items"] = data.NumItems
	}
	if data.TransactionID != "" {
		p["transaction_id"] = data.TransactionID
	}
	return p
}

// snapPayload uses Snapchat's conversion field names.
func snapPayload(data domain.EventPayload, _ string) map[string]any {
	p := map[string]any{}
	if len(data.ContentIDs) > 0 {
		p["item_ids"] = append([]string(nil), data.ContentIDs...)
	}
	if data.Currency != "" {
		p["currency"] = data.Currency
	}
	if data.Value != 0 {
		p["price"] = data.Value
	}
	if data.NumItems != 0 {
		p["number_items"] = data.NumItems
	}
	if data.TransactionID != "" {
		p["transaction_id"] = data.TransactionID
	}
	return p
}

// googlePayload renames the contents list to GA4 item fields.
func googlePayload(data domain.EventPayload, _ string) map[string]any {
	p := map[string]any{}
	if data.Currency != "" {
		p["currency"] = data.Currency
	}
	if data.Value != 0 {
		p["value"] = data.Value
	}
	if data.TransactionID != "" {
		p["transaction_id"] = data.TransactionID
	}
	if len(data.Contents) > 0 {
		items := make([]map[string]any, 0, len(data.Contents))
		for _, c := range data.Contents {
			items = append(items, map[string]any{
				"item_id":   c.ID,
				"item_name": c.Name,
				"price":     c.ItemPrice,
				"quantity":  c.Quantity,
			})
		}
		p["items"] = items
	}
	return p
}

// tiktokPayload adds a synthetic event_id so TikTok can deduplicate against
// any browser-side pixel firing the same event.
func tiktokPayload(data domain.EventPayload, eventName string) map[string]any {
	p := passthroughPayload(data, eventName)
	p["event_id"] = fmt.Sprintf("%s_%d", eventName, time.Now().UnixMilli())
	return p
}

// criteoPayload uses Criteo's basket line shape.
func criteoPayload(data domain.EventPayload, _ string) map[string]any {
	p := map[string]any{}
	if data.TransactionID != "" {
		p["id"] = data.TransactionID
	}
	if data.Currency != "" {
		p["currency"] = data.Currency
	}
	if len(data.Contents) > 0 {
		items := make([]map[string]any, 0, len(data.Contents))
		for _, c := range data.Contents {
			items = append(items, map[string]any{
				"id":       c.ID,
				"price":    c.ItemPrice,
				"quantity": c.Quantity,
			})
		}
		p["item"] = items
	}
	return p
}

// pinterestPayload uses Pinterest's line_items shape.
func pinterestPayload(data domain.EventPayload, _ string) map[string]any {
	p := map[string]any{}
	if data.Currency != "" {
		p["currency"] = data.Currency
	}
	if data.Value != 0 {
		p["value"] = data.Value
	}
	if data.TransactionID != "" {
		p["order_id"] = data.TransactionID
	}
	if len(data.Contents) > 0 {
		items := make([]map[string]any, 0, len(data.Contents))
		for _, c := range data.Contents {
			items = append(items, map[string]any{
				"product_id":       c.ID,
				"product_name":     c.Name,
				"product_price":    c.ItemPrice,
				"product_quantity": c.Quantity,
			})
		}
		p["line_items"] = items
	}
	return p
}

// taboolaPayload wraps the event in Taboola's notify envelope instead of a
// typed call.
func taboolaPayload(data domain.EventPayload, eventName string) map[string]any {
	p := map[string]any{
		"notify": "event",
		"name":   eventName,
	}
	if data.TransactionID != "" {
		p["id"] = data.TransactionID
	}
	if data.Value != 0 {
		p["revenue"] = data.Value
	}
	if data.Currency != "" {
		p["currency"] = data.Currency
	}
	return p
}
