package pricing

import (
	"github.com/shopspring/decimal"
)

// All arithmetic here runs on exact decimals; no floats are involved at any
// step, so repeated conversions never accumulate drift. Inputs are expected
// to be non-negative finite amounts; that is a caller precondition, not
// something these functions defend against.

const (
	// nanoPerUnit: the display unit is 1e9 base units.
	nanoPerUnit = 1_000_000_000
	// microPerUSD: valuation amounts arrive in millionths of a USD.
	microPerUSD = 1_000_000

	intermediatePrecision = 10
	displayPricePrecision = 3
	marketCapPrecision    = 2
)

var (
	nanoPerUnitDec = decimal.NewFromInt(nanoPerUnit)
	microPerUSDDec = decimal.NewFromInt(microPerUSD)
)

// UnitsFromNano converts a nano-unit amount to display units: zero maps to
// exact zero, anything else divides by 1e9 rounded half-up at 10 digits.
func UnitsFromNano(nano int64) decimal.Decimal {
	if nano == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(nano).DivRound(nanoPerUnitDec, intermediatePrecision)
}

// PricePerUnitFromMicroUSD derives the displayed per-unit price from a total
// micro-USD valuation and a nano-unit volume. Zero volume yields exact zero
// (guard, not an error). Intermediate divisions round half-up at 10 digits;
// the final quotient is floored to 3 digits. The half-up/floor asymmetry is
// intentional: displayed prices bias slightly downward for conservative
// reporting.
func PricePerUnitFromMicroUSD(totalMicroUSD, volumeNano int64) decimal.Decimal {
	if volumeNano == 0 {
		return decimal.Zero
	}
	usd := decimal.NewFromInt(totalMicroUSD).DivRound(microPerUSDDec, intermediatePrecision)
	units := UnitsFromNano(volumeNano)
	return usd.DivRound(units, intermediatePrecision).RoundFloor(displayPricePrecision)
}

// MarketCapFromNav multiplies a per-unit price by a nano-unit supply,
// flooring to whole cents, same downward bias as the displayed price.
func MarketCapFromNav(pricePerUnit decimal.Decimal, supplyNano int64) decimal.Decimal {
	if supplyNano == 0 {
		return decimal.Zero
	}
	return pricePerUnit.Mul(UnitsFromNano(supplyNano)).RoundFloor(marketCapPrecision)
}
