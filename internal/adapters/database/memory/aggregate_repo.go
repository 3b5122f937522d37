package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type aggregateRepo struct{ u *unitOfWork }

func (r aggregateRepo) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, bool, error) {
	b, ok := r.u.d.balances[accountID]
	if !ok {
		return decimal.Zero, false, nil
	}
	return b, true, nil
}

func (r aggregateRepo) UpsertAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal) error {
	r.u.d.balances[accountID] = r.u.d.balances[accountID].Add(delta)
	return nil
}

func (r aggregateRepo) UpsertAccountDailyTurnover(ctx context.Context, accountID string, day time.Time, debitDelta, creditDelta decimal.Decimal) error {
	key := turnoverKey{accountID: accountID, day: day}
	cur := r.u.d.turnovers[key]
	r.u.d.turnovers[key] = [2]decimal.Decimal{cur[0].Add(debitDelta), cur[1].Add(creditDelta)}
	return nil
}
