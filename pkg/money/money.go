package money

import "github.com/shopspring/decimal"

// minorUnitScale is the number of decimal places between major and minor
// units for the supported currencies (USD: dollars to cents).
const minorUnitScale = 2

// ToMinorUnits converts a decimal amount in major currency units into the
// integer minor-unit form the payment provider expects. Fractional remainders
// below one minor unit are truncated, not rounded. Callers must supply a
// finite, non-negative amount; the catalog validates prices before they
// reach this point.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(minorUnitScale).Truncate(0).IntPart()
}
