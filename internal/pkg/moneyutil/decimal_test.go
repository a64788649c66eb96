package moneyutil

import (
	"math/big"
	"testing"
)

func TestFromBaseUnits(t *testing.T) {
	testCases := []struct {
		name      string
		baseUnits string
		precision uint8
		want      string
	}{
		{name: "1.5 BTC in sats", baseUnits: "150000000", precision: 8, want: "1.5"},
		{name: "one wei", baseUnits: "1", precision: 18, want: "0.000000000000000001"},
		{name: "zero precision", baseUnits: "42", precision: 0, want: "42"},
		{name: "empty string", baseUnits: "", precision: 8, want: "0"},
		{name: "garbage", baseUnits: "not-a-number", precision: 8, want: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromBaseUnits(tc.baseUnits, tc.precision).String(); got != tc.want {
				t.Errorf("FromBaseUnits(%q, %d) = %s, want %s", tc.baseUnits, tc.precision, got, tc.want)
			}
		})
	}
}

func TestFiatValue(t *testing.T) {
	testCases := []struct {
		name      string
		baseUnits string
		precision uint8
		price     string
		want      string
	}{
		{name: "1.5 units at 2.00", baseUnits: "150000000", precision: 8, price: "2.00", want: "3"},
		{name: "usdc cents", baseUnits: "2500000", precision: 6, price: "1.00", want: "2.5"},
		{name: "unknown price", baseUnits: "150000000", precision: 8, price: "", want: "0"},
		{name: "invalid balance", baseUnits: "?", precision: 8, price: "2.00", want: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FiatValue(tc.baseUnits, tc.precision, tc.price).String(); got != tc.want {
				t.Errorf("FiatValue(%q, %d, %q) = %s, want %s", tc.baseUnits, tc.precision, tc.price, got, tc.want)
			}
		})
	}
}

func TestFiatValue_RoundedToCents(t *testing.T) {
	got := RoundCents(FiatValue("150000000", 8, "2.00"))
	if got.String() != "3" {
		t.Errorf("rounded fiat value = %s, want 3", got)
	}
	// 0.333... * 3 style residue rounds to exactly 2 places.
	got = RoundCents(FiatValue("333333333", 8, "1.999"))
	if got.String() != "6.66" {
		t.Errorf("rounded fiat value = %s, want 6.66", got)
	}
}

func TestSumBaseUnits(t *testing.T) {
	testCases := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "three addresses", values: []string{"100", "250", "0"}, want: "350"},
		{name: "empty list", values: nil, want: "0"},
		{name: "invalid coerced to zero", values: []string{"100", "oops", ""}, want: "100"},
		{name: "big values", values: []string{"123456789012345678901234567890", "1"}, want: "123456789012345678901234567891"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SumBaseUnits(tc.values); got != tc.want {
				t.Errorf("SumBaseUnits(%v) = %s, want %s", tc.values, got, tc.want)
			}
		})
	}
}

func TestFormatBigInt(t *testing.T) {
	testCases := []struct {
		name     string
		amount   *big.Int
		decimals uint8
		want     string
	}{
		{name: "1.2345 eth", amount: bigFromString(t, "1234500000000000000"), decimals: 18, want: "1.2345"},
		{name: "whole number", amount: big.NewInt(5000000), decimals: 6, want: "5"},
		{name: "zero", amount: big.NewInt(0), decimals: 8, want: "0"},
		{name: "nil", amount: nil, decimals: 8, want: "0"},
		{name: "integer asset", amount: big.NewInt(42), decimals: 0, want: "42"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatBigInt(tc.amount, tc.decimals); got != tc.want {
				t.Errorf("FormatBigInt(%v, %d) = %q, want %q", tc.amount, tc.decimals, got, tc.want)
			}
		})
	}
}

func bigFromString(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad big.Int literal %q", s)
	}
	return n
}
