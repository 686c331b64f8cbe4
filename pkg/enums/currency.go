package enums

import "strings"

// Currency is the ISO 4217 code attached to monetary amounts.
type Currency string

const (
	CurrencyUSD Currency = "USD"
)

// CurrencyFromCode normalizes a configured currency code to its uppercase
// ISO form, defaulting to USD when the value is blank.
func CurrencyFromCode(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return CurrencyUSD
	}
	return Currency(code)
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}
