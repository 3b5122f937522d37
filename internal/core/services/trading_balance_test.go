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

func TestTradingBalanceService_RawAggregatesPerCurrency(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := &mutableClock{t: atSeconds(100)}
	posting := NewPostingService(uow, clock, 2, testRetry())

	_, err := posting.Post(context.Background(), portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
		},
	})
	require.NoError(t, err)

	_, err = posting.Post(context.Background(), portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Cash:EUR", Amount: decimal.RequireFromString("50.00"), CurrencyCode: "EUR"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("55.00"), CurrencyCode: "USD"},
		},
	})
	require.NoError(t, err)

	tradingSvc := NewTradingBalanceService(uow, clock, 2, 6)
	lines, err := tradingSvc.Raw(context.Background(), portssvc.TradingBalanceRequest{})
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "EUR", lines[0].CurrencyCode)
	assert.Equal(t, "USD", lines[1].CurrencyCode)
	assert.True(t, lines[0].Debit.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, lines[1].Credit.Equal(decimal.RequireFromString("155.00")))
}

func TestTradingBalanceService_DetailedConvertsToBase(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := &mutableClock{t: atSeconds(100)}
	posting := NewPostingService(uow, clock, 2, testRetry())

	_, err := posting.Post(context.Background(), portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Cash:EUR", Amount: decimal.RequireFromString("50.00"), CurrencyCode: "EUR"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("55.00"), CurrencyCode: "USD"},
		},
	})
	require.NoError(t, err)

	tradingSvc := NewTradingBalanceService(uow, clock, 2, 6)
	lines, err := tradingSvc.Detailed(context.Background(), portssvc.TradingBalanceRequest{})
	require.NoError(t, err)

	var eurLine *domain.DetailedTradingLine
	for i := range lines {
		if lines[i].CurrencyCode == "EUR" {
			eurLine = &lines[i]
		}
	}
	require.NotNil(t, eurLine)
	assert.True(t, eurLine.UsedRate.Equal(decimal.RequireFromString("1.10")))
	assert.True(t, eurLine.DebitBase.Equal(decimal.RequireFromString("55.00")))
}

func TestTradingBalanceService_StartAfterEndRejected(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := &mutableClock{t: atSeconds(100)}
	tradingSvc := NewTradingBalanceService(uow, clock, 2, 6)

	start := atSeconds(200)
	end := atSeconds(100)
	_, err := tradingSvc.Raw(context.Background(), portssvc.TradingBalanceRequest{Start: &start, End: &end})
	require.Error(t, err)
}
