package domain

import "github.com/shopspring/decimal"

// RawTradingLine is one currency's raw (unconverted) debit/credit/net totals
// over a time window, as produced by the Raw trading-balance aggregator.
// Grounded on the teacher's AccountAmount/TrialBalanceRow reporting rows,
// generalized from per-account to per-currency per the spec's Raw/Detailed
// aggregators (§4.6).
type RawTradingLine struct {
	CurrencyCode string          `json:"currencyCode"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Net          decimal.Decimal `json:"net"` // debit - credit
}

// DetailedTradingLine is a RawTradingLine additionally converted into the
// base currency using the rate in effect at aggregation time.
type DetailedTradingLine struct {
	RawTradingLine
	UsedRate    decimal.Decimal `json:"usedRate"` // rate-quantized to 6 digits
	DebitBase   decimal.Decimal `json:"debitBase"`
	CreditBase  decimal.Decimal `json:"creditBase"`
	NetBase     decimal.Decimal `json:"netBase"`
}

// ParityLine reports, for one currency, whether it is the base currency, its
// latest known rate, and a deviation heuristic.
type ParityLine struct {
	CurrencyCode string           `json:"currencyCode"`
	IsBase       bool             `json:"isBase"`
	LatestRate   *decimal.Decimal `json:"latestRate,omitempty"` // nil for base
	Deviation    *decimal.Decimal `json:"deviation,omitempty"`  // (rate-1)*100
}

// ParityReport is the full parity report: lines sorted ascending by code.
type ParityReport struct {
	Lines         []ParityLine `json:"lines"`
	HasDeviation  bool         `json:"hasDeviation"`
}
