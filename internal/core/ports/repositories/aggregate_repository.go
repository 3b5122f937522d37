package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AggregateRepository maintains the denormalized account_balances and
// account_daily_turnovers tables. Every method must run under the caller's
// Unit-of-Work transaction so each upsert is applied in the same transaction
// as the line insertion (spec §5, "Ordering guarantees").
type AggregateRepository interface {
	// GetAccountBalance returns the current balance for accountID, or
	// (zero, false) if no row exists yet.
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, bool, error)

	// UpsertAccountBalance adds delta to accountID's stored balance,
	// creating the row (starting from zero) if absent.
	UpsertAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal) error

	// UpsertAccountDailyTurnover adds debitDelta/creditDelta to the
	// (accountID, day) row, creating it if absent. day must already be
	// truncated to UTC midnight.
	UpsertAccountDailyTurnover(ctx context.Context, accountID string, day time.Time, debitDelta, creditDelta decimal.Decimal) error
}
