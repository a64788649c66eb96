package moneyutil

import (
	"math/big"
	"strings"
)

// FormatBigInt converts a base-unit big.Int to a human-readable decimal
// string, e.g. amount=1234500000000000000, decimals=18 => "1.2345".
// A nil amount formats as "0".
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	value := new(big.Float).Quo(new(big.Float).SetInt(amount), new(big.Float).SetInt(divisor))

	formatted := value.Text('f', int(decimals))
	if strings.Contains(formatted, ".") {
		formatted = strings.TrimRight(formatted, "0")
		formatted = strings.TrimRight(formatted, ".")
	}
	if formatted == "" || formatted == "-" {
		return "0"
	}
	return formatted
}
