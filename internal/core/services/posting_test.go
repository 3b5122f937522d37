package services

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger/internal/adapters/database/memory"
	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestStore() *memory.Store {
	store := memory.NewStore()
	store.SeedCurrency(domain.Currency{Code: "USD", IsBase: true})
	eurRate := decimal.RequireFromString("1.10")
	store.SeedCurrency(domain.Currency{Code: "EUR", ExchangeRate: &eurRate})
	store.SeedAccount(domain.Account{ID: "a-cash", FullName: "Assets:Cash", CurrencyCode: "USD"})
	store.SeedAccount(domain.Account{ID: "a-cash-eur", FullName: "Assets:Cash:EUR", CurrencyCode: "EUR"})
	store.SeedAccount(domain.Account{ID: "a-sales", FullName: "Income:Sales", CurrencyCode: "USD"})
	return store
}

func testRetry() RetryConfig {
	return RetryConfig{Attempts: 1}
}

func TestPostingService_SingleCurrencyBalancedPost(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := fixedClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewPostingService(uow, clock, 2, testRetry())

	req := portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
		},
		Memo: "test sale",
	}

	journal, err := svc.Post(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, journal)
	assert.Len(t, journal.Lines, 2)
	assert.Equal(t, clock.t, journal.OccurredAt)

	balanceSvc := NewBalanceService(uow, clock, 2)
	cashBal, err := balanceSvc.Balance(context.Background(), "Assets:Cash", nil)
	require.NoError(t, err)
	assert.True(t, cashBal.Equal(decimal.RequireFromString("100.00")))

	salesBal, err := balanceSvc.Balance(context.Background(), "Income:Sales", nil)
	require.NoError(t, err)
	assert.True(t, salesBal.Equal(decimal.RequireFromString("-100.00")))
}

func TestPostingService_MultiCurrencyBalancedPost(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := fixedClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewPostingService(uow, clock, 2, testRetry())

	req := portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Cash:EUR", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "EUR"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("110.00"), CurrencyCode: "USD"},
		},
	}

	journal, err := svc.Post(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, journal)

	balanceSvc := NewBalanceService(uow, clock, 2)
	eurBal, err := balanceSvc.Balance(context.Background(), "Assets:Cash:EUR", nil)
	require.NoError(t, err)
	assert.True(t, eurBal.Equal(decimal.RequireFromString("100.00")))
}

func TestPostingService_UnbalancedRejectedAndNotPersisted(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := fixedClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewPostingService(uow, clock, 2, testRetry())

	req := portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("99.00"), CurrencyCode: "USD"},
		},
	}

	_, err := svc.Post(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDomain)

	balanceSvc := NewBalanceService(uow, clock, 2)
	cashBal, err := balanceSvc.Balance(context.Background(), "Assets:Cash", nil)
	require.NoError(t, err)
	assert.True(t, cashBal.IsZero(), "rejected posting must not have mutated the balance")
}

func TestPostingService_IdempotentRepeatReturnsSameJournal(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := fixedClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewPostingService(uow, clock, 2, testRetry())

	req := portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("50.00"), CurrencyCode: "USD"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("50.00"), CurrencyCode: "USD"},
		},
		Meta: map[string]interface{}{"idempotency_key": "order-42"},
	}

	first, err := svc.Post(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Post(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	balanceSvc := NewBalanceService(uow, clock, 2)
	cashBal, err := balanceSvc.Balance(context.Background(), "Assets:Cash", nil)
	require.NoError(t, err)
	assert.True(t, cashBal.Equal(decimal.RequireFromString("50.00")), "repeat post must not double-apply the balance delta")
}

func TestPostingService_UnknownAccountRejected(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	clock := fixedClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewPostingService(uow, clock, 2, testRetry())

	req := portssvc.PostTransactionRequest{
		Lines: []domain.EntryLine{
			{Side: domain.Debit, AccountFullName: "Assets:Unknown", Amount: decimal.RequireFromString("1.00"), CurrencyCode: "USD"},
			{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("1.00"), CurrencyCode: "USD"},
		},
	}
	_, err := svc.Post(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
