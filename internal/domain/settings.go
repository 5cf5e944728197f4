package domain

import "fmt"

// Purchase event naming modes for the Facebook pixel.
const (
	FbPurchaseStandard = "Purchase"
	FbPurchaseCustom   = "Custom"
)

// PixelSettings is the merchant-configured tracking configuration, persisted
// as JSON by the admin dashboard. A non-empty pixel ID enables that platform.
type PixelSettings struct {
	FacebookPixelID  string `json:"facebookPixelId,omitempty"`
	SnapPixelID      string `json:"snapPixelId,omitempty"`
	GoogleTagID      string `json:"googleTagId,omitempty"`
	TiktokPixelID    string `json:"tiktokPixelId,omitempty"`
	KwaiPixelID      string `json:"kwaiPixelId,omitempty"`
	CriteoAccountID  string `json:"criteoAccountId,omitempty"`
	PinterestTagID   string `json:"pinterestTagId,omitempty"`
	TaboolaAccountID string `json:"taboolaAccountId,omitempty"`

	// DisableAllEvents is a global kill switch: no event is dispatched to any
	// platform while it is set.
	DisableAllEvents bool `json:"disableAllEvents"`

	// FbPurchaseEvent selects the Facebook Purchase event name: "Purchase"
	// (default) or "Custom", which resolves to "CustomPurchase" when the
	// adapter table is built.
	FbPurchaseEvent string `json:"fbPurchaseEvent,omitempty"`

	// Opt-in toggles for events that some platforms bill or volume-limit.
	SendFbAddPaymentInfo bool `json:"sendFbAddPaymentInfo"`
	SendFbAddToCart      bool `json:"sendFbAddToCart"`
	SendTiktokAddToCart  bool `json:"sendTiktokAddToCart"`
	SendSnapAddToCart    bool `json:"sendSnapAddToCart"`
}

// Validate checks settings coming in from the admin API.
func (s *PixelSettings) Validate() error {
	switch s.FbPurchaseEvent {
	case "", FbPurchaseStandard, FbPurchaseCustom:
	default:
		return fmt.Errorf("fbPurchaseEvent must be %q or %q, got %q",
			FbPurchaseStandard, FbPurchaseCustom, s.FbPurchaseEvent)
	}
	return nil
}
