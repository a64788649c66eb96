package moneyutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// All money math in this service goes through shopspring/decimal. Native
// floats are never used for balances or fiat values, so cent-level rounding
// stays exact.

// FromBaseUnits converts a base-unit integer string into a decimal amount
// using the asset's precision. A missing or unparsable balance yields zero
// rather than an error: the portfolio always renders something.
func FromBaseUnits(baseUnits string, precision uint8) decimal.Decimal {
	d, err := decimal.NewFromString(baseUnits)
	if err != nil {
		return decimal.Zero
	}
	return d.Shift(-int32(precision))
}

// FiatValue computes balance * price with the balance scaled from base
// units. Unknown price or unparsable inputs yield zero.
func FiatValue(baseUnits string, precision uint8, price string) decimal.Decimal {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero
	}
	return FromBaseUnits(baseUnits, precision).Mul(p)
}

// RoundCents rounds a fiat amount to 2 decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// SumBaseUnits sums base-unit integer strings using big.Int arithmetic.
// Absent or invalid values are coerced to zero before summing. The result
// is again a base-unit integer string.
func SumBaseUnits(values []string) string {
	total := new(big.Int)
	for _, v := range values {
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			continue
		}
		total.Add(total, n)
	}
	return total.String()
}
