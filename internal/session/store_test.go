package session

import (
	"context"
	"testing"

	"github.com/easycod/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagDefaultsToUnset(t *testing.T) {
	store := NewMemoryStore()

	set, err := store.Flag(context.Background(), "s1", FlagAddPaymentInfo)
	require.NoError(t, err)
	assert.False(t, set)
}

func TestSetFlagSticks(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetFlag(ctx, "s1", FlagAddPaymentInfo))

	set, err := store.Flag(ctx, "s1", FlagAddPaymentInfo)
	require.NoError(t, err)
	assert.True(t, set)

	// Other flags and other sessions are unaffected.
	set, err = store.Flag(ctx, "s1", FlagInitiateCheckout)
	require.NoError(t, err)
	assert.False(t, set)

	set, err = store.Flag(ctx, "s2", FlagAddPaymentInfo)
	require.NoError(t, err)
	assert.False(t, set)
}

func TestCartDefaultsToNil(t *testing.T) {
	store := NewMemoryStore()

	cart, err := store.Cart(context.Background(), "s1")
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestSaveCartRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	snap := domain.CartSnapshot{
		Items:      []domain.CartItem{{ID: "sku-1", Quantity: 2, PriceCents: 500}},
		TotalCents: 1000,
		Currency:   "DZD",
	}
	require.NoError(t, store.SaveCart(ctx, "s1", snap))

	got, err := store.Cart(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap, *got)
}

func TestSaveCartOverwrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveCart(ctx, "s1", domain.CartSnapshot{TotalCents: 1000}))
	require.NoError(t, store.SaveCart(ctx, "s1", domain.CartSnapshot{TotalCents: 2500}))

	got, err := store.Cart(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), got.TotalCents)
}

func TestNewSessionIDUnique(t *testing.T) {
	a := NewSessionID()
	b := NewSessionID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
