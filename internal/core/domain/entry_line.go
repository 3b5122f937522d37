package domain

import "github.com/shopspring/decimal"

// Side is one leg of a balanced posting.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// EntryLine is the transient, caller-supplied representation of one leg of a
// posting. It is validated and converted into a TransactionLine by the
// posting pipeline; it is never persisted as-is.
type EntryLine struct {
	Side             Side             `json:"side"`
	AccountFullName  string           `json:"accountFullName"`
	Amount           decimal.Decimal  `json:"amount"` // must be > 0
	CurrencyCode     string           `json:"currencyCode"`
	ExchangeRate     *decimal.Decimal `json:"exchangeRate,omitempty"` // optional override
}

// TransactionLine is the persisted form of an EntryLine, additionally keyed
// to its owning journal and resolved account.
type TransactionLine struct {
	ID           string           `json:"id"`
	JournalID    string           `json:"journalID"`
	AccountID    string           `json:"accountID"`
	Side         Side             `json:"side"`
	Amount       decimal.Decimal  `json:"amount"`
	CurrencyCode string           `json:"currencyCode"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
}
