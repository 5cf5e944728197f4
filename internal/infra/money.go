package infra

import (
	"fmt"
	"math"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

// CentsToDecimal converts a minor-unit amount to the decimal form used in
// event payloads (1999 -> 19.99). Event normalization is the single place
// this conversion is allowed to happen.
func CentsToDecimal(cents int64) float64 {
	return math.Round(float64(cents)) / 100
}

// DecimalToCents converts a decimal amount to minor units (19.99 -> 1999).
func DecimalToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// NumericToInt64 converts a pgtype.Numeric (from PostgreSQL numeric(15,0)) to int64.
// Returns an error if the value is NULL, or overflows int64.
func NumericToInt64(n pgtype.Numeric) (int64, error) {
	if !n.Valid {
		return 0, fmt.Errorf("numeric value is NULL")
	}

	// pgtype.Numeric stores value as Int * 10^Exp
	bi := new(big.Int).Set(n.Int)

	if n.Exp > 0 {
		multiplier := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil)
		bi.Mul(bi, multiplier)
	} else if n.Exp < 0 {
		// Shouldn't happen for numeric(15,0) columns; truncates fractions.
		divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-n.Exp)), nil)
		bi.Div(bi, divisor)
	}

	if !bi.IsInt64() {
		return 0, fmt.Errorf("numeric value %s overflows int64", bi.String())
	}

	return bi.Int64(), nil
}

// Int64ToNumeric converts an int64 to pgtype.Numeric for writing to PostgreSQL numeric(15,0).
func Int64ToNumeric(v int64) pgtype.Numeric {
	return pgtype.Numeric{
		Int:              big.NewInt(v),
		Exp:              0,
		NaN:              false,
		InfinityModifier: pgtype.Finite,
		Valid:            true,
	}
}
