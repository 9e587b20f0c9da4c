package codec

import (
	"strings"

	money "github.com/Rhymond/go-money"
)

// DefaultPrecision applies to currency codes absent from every table.
const DefaultPrecision = 2

// cryptoPrecision covers codes the ISO registry does not carry.
var cryptoPrecision = map[string]int{
	"BTC": 8,
	"ETH": 8,
}

// Precision returns the number of minor-unit decimal digits for a currency
// code, e.g. USD→2, JPY→0, BTC→8. Unknown codes fall back to
// DefaultPrecision.
func Precision(currency string) int {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if p, ok := cryptoPrecision[code]; ok {
		return p
	}
	if c := money.GetCurrency(code); c != nil {
		return c.Fraction
	}
	return DefaultPrecision
}
