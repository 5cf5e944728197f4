package infra

import (
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsToDecimal(t *testing.T) {
	tests := []struct {
		cents int64
		want  float64
	}{
		{0, 0},
		{1, 0.01},
		{100, 1},
		{1999, 19.99},
		{4250, 42.50},
		{-500, -5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CentsToDecimal(tt.cents), "cents=%d", tt.cents)
	}
}

func TestDecimalToCents(t *testing.T) {
	tests := []struct {
		v    float64
		want int64
	}{
		{0, 0},
		{0.01, 1},
		{19.99, 1999},
		{42.50, 4250},
		{29.999999, 3000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecimalToCents(tt.v), "v=%f", tt.v)
	}
}

func TestNumericRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 4250, 1<<40 + 7} {
		n := Int64ToNumeric(v)
		got, err := NumericToInt64(n)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestNumericToInt64Null(t *testing.T) {
	_, err := NumericToInt64(pgtype.Numeric{})
	assert.Error(t, err)
}

func TestTopicFor(t *testing.T) {
	assert.Equal(t, "easycod.pixel", TopicFor("pixel.purchase.tracked"))
	assert.Equal(t, "easycod.order", TopicFor("order.submitted"))
	assert.Equal(t, "easycod.settings", TopicFor("settings.updated"))
	assert.Equal(t, "easycod.pixel", TopicFor("pixel"))
}
