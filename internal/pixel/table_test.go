package pixel

import (
	"testing"

	"github.com/easycod/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPlatformSettings() *domain.PixelSettings {
	return &domain.PixelSettings{
		FacebookPixelID:  "fb-1",
		SnapPixelID:      "snap-1",
		GoogleTagID:      "G-1",
		TiktokPixelID:    "tt-1",
		KwaiPixelID:      "kwai-1",
		CriteoAccountID:  "cr-1",
		PinterestTagID:   "pin-1",
		TaboolaAccountID: "tb-1",
	}
}

func adapterFor(t *testing.T, table []Adapter, platform Platform) Adapter {
	t.Helper()
	for _, a := range table {
		if a.Platform == platform {
			return a
		}
	}
	t.Fatalf("platform %s not in table", platform)
	return Adapter{}
}

func TestBuildAdaptersOnlyConfiguredPlatforms(t *testing.T) {
	settings := &domain.PixelSettings{
		FacebookPixelID: "fb-1",
		TiktokPixelID:   "tt-1",
	}

	table := BuildAdapters(settings, nil)
	require.Len(t, table, 2)
	assert.Equal(t, PlatformFacebook, table[0].Platform)
	assert.Equal(t, PlatformTiktok, table[1].Platform)
}

func TestBuildAdaptersNilSettings(t *testing.T) {
	assert.Nil(t, BuildAdapters(nil, nil))
}

func TestFacebookPurchaseNameResolvedAtBuildTime(t *testing.T) {
	settings := &domain.PixelSettings{FacebookPixelID: "fb-1"}

	table := BuildAdapters(settings, nil)
	fb := adapterFor(t, table, PlatformFacebook)
	assert.Equal(t, "Purchase", fb.Events[domain.EventPurchase])

	settings.FbPurchaseEvent = domain.FbPurchaseCustom
	table = BuildAdapters(settings, nil)
	fb = adapterFor(t, table, PlatformFacebook)
	assert.Equal(t, "CustomPurchase", fb.Events[domain.EventPurchase])
}

func TestEventNameMappings(t *testing.T) {
	table := BuildAdapters(allPlatformSettings(), nil)

	tests := []struct {
		platform Platform
		event    domain.CanonicalEvent
		want     string
	}{
		{PlatformFacebook, domain.EventInitiateCheckout, "InitiateCheckout"},
		{PlatformSnapchat, domain.EventInitiateCheckout, "START_CHECKOUT"},
		{PlatformSnapchat, domain.EventAddPaymentInfo, "ADD_BILLING"},
		{PlatformGoogle, domain.EventInitiateCheckout, "begin_checkout"},
		{PlatformGoogle, domain.EventPurchase, "purchase"},
		{PlatformTiktok, domain.EventPurchase, "CompletePayment"},
		{PlatformKwai, domain.EventPurchase, "EVENT_PURCHASE"},
		{PlatformCriteo, domain.EventInitiateCheckout, "viewBasket"},
		{PlatformCriteo, domain.EventPurchase, "trackTransaction"},
		{PlatformPinterest, domain.EventPurchase, "checkout"},
		{PlatformPinterest, domain.EventAddToCart, "addtocart"},
		{PlatformTaboola, domain.EventPurchase, "make_purchase"},
	}

	for _, tt := range tests {
		a := adapterFor(t, table, tt.platform)
		assert.Equal(t, tt.want, a.Events[tt.event], "%s/%s", tt.platform, tt.event)
	}
}

func TestUnsupportedEventsHaveNoMapping(t *testing.T) {
	table := BuildAdapters(allPlatformSettings(), nil)

	kwai := adapterFor(t, table, PlatformKwai)
	assert.Empty(t, kwai.Events[domain.EventAddPaymentInfo])

	criteo := adapterFor(t, table, PlatformCriteo)
	assert.Empty(t, criteo.Events[domain.EventAddPaymentInfo])
	assert.Empty(t, criteo.Events[domain.EventAddToCart])

	pinterest := adapterFor(t, table, PlatformPinterest)
	assert.Empty(t, pinterest.Events[domain.EventInitiateCheckout])
	assert.Empty(t, pinterest.Events[domain.EventAddPaymentInfo])
}

func TestGooglePayloadRenamesItemFields(t *testing.T) {
	data := domain.EventPayload{
		Currency:      "DZD",
		Value:         42.50,
		TransactionID: "1001",
		Contents: []domain.ContentItem{
			{ID: "sku-1", Quantity: 2, ItemPrice: 10.0, Name: "Widget"},
		},
	}

	p := googlePayload(data, "purchase")
	items, ok := p["items"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "sku-1", items[0]["item_id"])
	assert.Equal(t, "Widget", items[0]["item_name"])
	assert.Equal(t, 10.0, items[0]["price"])
	assert.Equal(t, "1001", p["transaction_id"])
}

func TestTiktokPayloadCarriesEventID(t *testing.T) {
	p := tiktokPayload(domain.EventPayload{Value: 5}, "CompletePayment")
	id, ok := p["event_id"].(string)
	require.True(t, ok)
	assert.Contains(t, id, "CompletePayment_")
}

func TestTaboolaPayloadEnvelope(t *testing.T) {
	p := taboolaPayload(domain.EventPayload{Value: 42.5, Currency: "DZD", TransactionID: "1001"}, "make_purchase")
	assert.Equal(t, "event", p["notify"])
	assert.Equal(t, "make_purchase", p["name"])
	assert.Equal(t, 42.5, p["revenue"])
	assert.Equal(t, "1001", p["id"])
}

func TestPayloadFuncsDoNotMutateInput(t *testing.T) {
	data := domain.EventPayload{
		ContentIDs: []string{"a", "b"},
		Contents: []domain.ContentItem{
			{ID: "a", Quantity: 1, ItemPrice: 1.0},
			{ID: "b", Quantity: 2, ItemPrice: 2.0},
		},
		Currency:      "DZD",
		Value:         5.0,
		NumItems:      3,
		TransactionID: "tx",
	}

	for _, fn := range []PayloadFunc{
		passthroughPayload, snapPayload, googlePayload,
		tiktokPayload, criteoPayload, pinterestPayload, taboolaPayload,
	} {
		fn(data, "evt")
	}

	assert.Equal(t, []string{"a", "b"}, data.ContentIDs)
	assert.Equal(t, "DZD", data.Currency)
	assert.Equal(t, 5.0, data.Value)
	assert.Len(t, data.Contents, 2)
}
