package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is the denormalized current balance of one account, in the
// account's own currency. Absence of a row is equivalent to a zero balance.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"` // Σ debit − Σ credit, 2-scale
}

// AccountDailyTurnover is the denormalized per-UTC-day debit/credit totals
// for one account, accumulated atomically with postings.
type AccountDailyTurnover struct {
	AccountID   string          `json:"accountID"`
	Day         time.Time       `json:"day"` // truncated to UTC midnight
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
}

// TruncateToUTCDay truncates t to midnight UTC, the key used by
// AccountDailyTurnover.
func TruncateToUTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
