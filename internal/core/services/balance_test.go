package services

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger/internal/adapters/database/memory"
	"github.com/SscSPs/ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceService_UnknownAccountReturnsZero(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := &mutableClock{t: atSeconds(100)}
	svc := NewBalanceService(uow, clock, 2)

	bal, err := svc.Balance(context.Background(), "Assets:Nowhere", nil)
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestBalanceService_AsOfPastFallsBackToLineScan(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := &mutableClock{t: atSeconds(10)}
	posting := NewPostingService(uow, clock, 2, testRetry())

	_, err := posting.Post(context.Background(), portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("40.00"), CurrencyCode: "USD"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("40.00"), CurrencyCode: "USD"},
		},
	})
	require.NoError(t, err)

	clock.t = atSeconds(20)
	_, err = posting.Post(context.Background(), portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("60.00"), CurrencyCode: "USD"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("60.00"), CurrencyCode: "USD"},
		},
	})
	require.NoError(t, err)

	balanceSvc := NewBalanceService(uow, clock, 2)
	asOf := atSeconds(15)
	bal, err := balanceSvc.Balance(context.Background(), "Assets:Cash", &asOf)
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.RequireFromString("40.00")), "as-of before the second posting must only see the first")

	current, err := balanceSvc.Balance(context.Background(), "Assets:Cash", nil)
	require.NoError(t, err)
	assert.True(t, current.Equal(decimal.RequireFromString("100.00")))
}
