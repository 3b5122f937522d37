package pgsql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type aggregateRepo struct{ BaseRepository }

func (r aggregateRepo) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, bool, error) {
	const query = `SELECT balance FROM account_balances WHERE account_id = $1;`

	var balance decimal.Decimal
	err := r.DB().QueryRow(ctx, query, accountID).Scan(&balance)
	if err != nil {
		classified := classifyErr(err)
		if isNotFound(classified) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, classified
	}
	return balance, true, nil
}

// UpsertAccountBalance relies on Postgres to fold the delta in atomically
// under the caller's transaction, so concurrent postings against the same
// account serialize on the row lock rather than racing a separate
// read-modify-write (spec §5, "Aggregate upserts serialize per account key
// through row-level contention").
func (r aggregateRepo) UpsertAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal) error {
	const query = `
		INSERT INTO account_balances (account_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (account_id) DO UPDATE SET balance = account_balances.balance + EXCLUDED.balance;
	`
	_, err := r.DB().Exec(ctx, query, accountID, delta)
	if err != nil {
		return classifyErr(err)
	}
	return nil
}

func (r aggregateRepo) UpsertAccountDailyTurnover(ctx context.Context, accountID string, day time.Time, debitDelta, creditDelta decimal.Decimal) error {
	const query = `
		INSERT INTO account_daily_turnovers (account_id, day, debit_total, credit_total)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, day) DO UPDATE SET
			debit_total = account_daily_turnovers.debit_total + EXCLUDED.debit_total,
			credit_total = account_daily_turnovers.credit_total + EXCLUDED.credit_total;
	`
	_, err := r.DB().Exec(ctx, query, accountID, day, debitDelta, creditDelta)
	if err != nil {
		return classifyErr(err)
	}
	return nil
}
