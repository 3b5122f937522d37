package domain

import "github.com/shopspring/decimal"

// Currency is a supported posting currency. Exactly zero or one currency in
// a given ledger may have IsBase set; a base currency always carries a nil
// ExchangeRate (it is, by definition, its own unit).
type Currency struct {
	Code         string           `json:"code"` // 3-10 uppercase letters, unique
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	IsBase       bool             `json:"isBase"`
}

// EffectiveRate returns the rate to use when converting Code into the base
// currency: 1 for the base currency itself, otherwise the stored rate. ok is
// false when a non-base currency carries no positive stored rate.
func (c Currency) EffectiveRate() (rate decimal.Decimal, ok bool) {
	if c.IsBase {
		return decimal.NewFromInt(1), true
	}
	if c.ExchangeRate == nil || !c.ExchangeRate.IsPositive() {
		return decimal.Zero, false
	}
	return *c.ExchangeRate, true
}
