package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/SscSPs/ledger/internal/quantize"
	"github.com/shopspring/decimal"
)

// balanceService implements portssvc.BalanceSvc (spec §4.4).
type balanceService struct {
	uow        portsrepo.UnitOfWorkFactory
	clock      Clock
	moneyScale int32
}

// NewBalanceService constructs the GetAccountBalance use-case.
func NewBalanceService(uow portsrepo.UnitOfWorkFactory, clock Clock, moneyScale int32) portssvc.BalanceSvc {
	if clock == nil {
		clock = SystemClock{}
	}
	return &balanceService{uow: uow, clock: clock, moneyScale: moneyScale}
}

func (s *balanceService) Balance(ctx context.Context, accountFullName string, asOf *time.Time) (decimal.Decimal, error) {
	txn, err := s.uow.Begin(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: failed to open unit of work: %v", apperrors.ErrUnexpected, err)
	}
	defer func() { _ = txn.Rollback(ctx) }()

	acc, err := txn.Accounts().FindAccountByFullName(ctx, accountFullName)
	if err != nil {
		return decimal.Zero, err
	}
	if acc == nil {
		// Unknown account returns 0 (spec §4.4: "caller may separately
		// verify existence").
		return decimal.Zero, nil
	}

	now := s.clock.Now().UTC()
	if asOf == nil || !asOf.Before(now) {
		bal, ok, err := txn.Aggregates().GetAccountBalance(ctx, acc.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if !ok {
			return decimal.Zero, nil
		}
		return bal, nil
	}

	debit, credit, err := txn.Journals().SumLinesForAccount(ctx, acc.ID, *asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return quantize.Money(debit.Sub(credit), s.moneyScale), nil
}
