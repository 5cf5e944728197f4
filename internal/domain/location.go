package domain

// Wilaya is a top-level delivery region with its COD shipping fee.
type Wilaya struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	ShippingFeeCents int64  `json:"shipping_fee_cents"`
	HomeDelivery     bool   `json:"home_delivery"`
	StopDeskDelivery bool   `json:"stop_desk_delivery"`
}

// Commune is a second-level location inside a wilaya.
type Commune struct {
	WilayaCode string `json:"wilaya_code"`
	Name       string `json:"name"`
}
