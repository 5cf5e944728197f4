package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings PixelSettings
		wantErr  bool
	}{
		{"empty", PixelSettings{}, false},
		{"standard purchase", PixelSettings{FbPurchaseEvent: FbPurchaseStandard}, false},
		{"custom purchase", PixelSettings{FbPurchaseEvent: FbPurchaseCustom}, false},
		{"bad purchase mode", PixelSettings{FbPurchaseEvent: "Weird"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultFormConfigIsValid(t *testing.T) {
	config := DefaultFormConfig()
	assert.NoError(t, config.Validate())
	assert.True(t, config.Active)
}

func TestFormConfigValidate(t *testing.T) {
	base := func() *FormConfig {
		return &FormConfig{
			Active: true,
			Fields: []FormField{
				{Name: "phone", Type: "tel", Label: "Phone", Required: true},
			},
		}
	}

	t.Run("no fields", func(t *testing.T) {
		c := &FormConfig{Active: true}
		assert.Error(t, c.Validate())
	})

	t.Run("duplicate names", func(t *testing.T) {
		c := base()
		c.Fields = append(c.Fields, FormField{Name: "phone", Type: "text", Label: "Phone 2"})
		assert.Error(t, c.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		c := base()
		c.Fields[0].Type = "checkbox"
		assert.Error(t, c.Validate())
	})

	t.Run("select without options", func(t *testing.T) {
		c := base()
		c.Fields = append(c.Fields, FormField{Name: "size", Type: "select", Label: "Size"})
		assert.Error(t, c.Validate())
	})

	t.Run("wilaya select exempt from options", func(t *testing.T) {
		c := base()
		c.Fields = append(c.Fields,
			FormField{Name: "wilaya", Type: "select", Label: "Wilaya"},
			FormField{Name: "commune", Type: "select", Label: "Commune"},
		)
		assert.NoError(t, c.Validate())
	})

	t.Run("bad color", func(t *testing.T) {
		c := base()
		c.Style.ButtonColor = "red"
		assert.Error(t, c.Validate())
	})

	t.Run("border radius bounds", func(t *testing.T) {
		c := base()
		c.Style.BorderRadius = 51
		assert.Error(t, c.Validate())
	})
}

func TestValidateValues(t *testing.T) {
	config := DefaultFormConfig()

	err := config.ValidateValues(map[string]string{
		"full_name": "Amine B",
		"phone":     "0550123456",
		"wilaya":    "16",
		"commune":   "Alger Centre",
		"quantity":  "1",
	})
	assert.NoError(t, err)

	err = config.ValidateValues(map[string]string{
		"full_name": "Amine B",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateEmail("shopper@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(""))

	assert.NoError(t, ValidatePhone("0550123456"))
	assert.NoError(t, ValidatePhone("+213 550 123 456"))
	assert.Error(t, ValidatePhone("abc"))

	assert.NoError(t, ValidateCurrency("DZD"))
	assert.Error(t, ValidateCurrency("dzd"))
	assert.Error(t, ValidateCurrency("DZDX"))

	assert.NoError(t, ValidateHexColor("#fff"))
	assert.NoError(t, ValidateHexColor("#1a73e8"))
	assert.Error(t, ValidateHexColor("1a73e8"))
}

func TestCartSnapshotHelpers(t *testing.T) {
	empty := CartSnapshot{}
	assert.True(t, empty.Empty())
	assert.Zero(t, empty.ItemCount())

	snap := CartSnapshot{Items: []CartItem{
		{ID: "a", Quantity: 2},
		{ID: "b", Quantity: 3},
	}}
	assert.False(t, snap.Empty())
	assert.Equal(t, 5, snap.ItemCount())
}

func TestNewPixelTrackedEvent(t *testing.T) {
	draft := NewPixelTrackedEvent("shop.example", "s1", EventPurchase, EventPayload{Value: 42.5, TransactionID: "1001"})

	assert.Equal(t, EventPixelPurchase, draft.EventType)
	assert.Equal(t, AggregateSession, draft.AggregateType)
	assert.Equal(t, "s1", draft.AggregateID)
	assert.Equal(t, "s1", draft.PartitionKey)
	assert.NotEqual(t, "", draft.EventID.String())
	assert.False(t, draft.OccurredAt.IsZero())
	assert.Contains(t, string(draft.Payload), `"1001"`)
}

func TestCanonicalEventsCoverOutboxTypes(t *testing.T) {
	for _, ev := range CanonicalEvents() {
		draft := NewPixelTrackedEvent("shop.example", "s1", ev, EventPayload{})
		assert.NotEmpty(t, draft.EventType, "event %s", ev)
	}
}

func TestAppErrorStatuses(t *testing.T) {
	assert.Equal(t, 404, ErrFormInactive().Status)
	assert.Equal(t, 409, ErrDuplicateSubmission("1001").Status)
	assert.Equal(t, 429, ErrRateLimited("slow down").Status)
	assert.Equal(t, 502, ErrOrderFailed(assert.AnError).Status)
	assert.ErrorIs(t, ErrOrderFailed(assert.AnError), assert.AnError)
}
