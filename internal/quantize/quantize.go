// Package quantize implements the two pure decimal-rounding functions the
// rest of the ledger is built on. Neither mutates any ambient decimal state;
// scale and rounding mode are passed explicitly, per the teacher's own
// avoidance of shopspring/decimal's package-level DivisionPrecision global.
package quantize

import "github.com/shopspring/decimal"

// Default scales and rounding mode, overridable via Settings (see
// internal/config). ROUND_HALF_EVEN ("banker's rounding") is the contract
// default for both money and rate quantization.
const (
	DefaultMoneyScale int32 = 2
	DefaultRateScale  int32 = 6
)

// Rounding identifies a rounding mode. Only RoundHalfEven exists, and Money
// and Rate always round half-to-even; config.Settings names its mode with its
// own config.Rounding type, not this one.
type Rounding int

const (
	RoundHalfEven Rounding = iota
)

// Money quantizes x to scale fractional digits using round-half-to-even.
// Money(x, 2) is the contract default used throughout the posting pipeline.
func Money(x decimal.Decimal, scale int32) decimal.Decimal {
	return roundHalfEven(x, scale)
}

// Rate quantizes x to scale fractional digits using round-half-to-even.
// Rate(x, 6) is the contract default for exchange rates.
func Rate(x decimal.Decimal, scale int32) decimal.Decimal {
	return roundHalfEven(x, scale)
}

// roundHalfEven rounds x to scale fractional digits without touching any
// package-global decimal context. decimal.Decimal.RoundBank implements
// round-half-to-even directly and is immutable (returns a new value), so no
// ambient state is touched.
func roundHalfEven(x decimal.Decimal, scale int32) decimal.Decimal {
	return x.RoundBank(scale)
}
