package domain

import "time"

// PixelEventStat is a per-shop, per-platform, per-event daily counter built
// by the analytics consumer from the outbox stream.
type PixelEventStat struct {
	ShopDomain string    `json:"shop_domain"`
	EventName  string    `json:"event_name"`
	Day        time.Time `json:"day"`
	Count      int64     `json:"count"`
}
