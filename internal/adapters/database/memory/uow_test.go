package memory

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_RollbackDiscardsChanges(t *testing.T) {
	store := NewStore()
	factory := NewUnitOfWorkFactory(store)

	txn, err := factory.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, txn.Currencies().SaveCurrency(context.Background(), domain.Currency{Code: "USD", IsBase: true}))
	require.NoError(t, txn.Rollback(context.Background()))

	txn2, err := factory.Begin(context.Background())
	require.NoError(t, err)
	c, err := txn2.Currencies().FindCurrencyByCode(context.Background(), "USD")
	require.NoError(t, err)
	assert.Nil(t, c, "rolled-back writes must not be visible to a later unit of work")
}

func TestUnitOfWork_CommitPublishesChanges(t *testing.T) {
	store := NewStore()
	factory := NewUnitOfWorkFactory(store)

	txn, err := factory.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, txn.Currencies().SaveCurrency(context.Background(), domain.Currency{Code: "USD", IsBase: true}))
	require.NoError(t, txn.Commit(context.Background()))

	txn2, err := factory.Begin(context.Background())
	require.NoError(t, err)
	c, err := txn2.Currencies().FindCurrencyByCode(context.Background(), "USD")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "USD", c.Code)
}

func TestUnitOfWork_DoubleCommitIsNoOp(t *testing.T) {
	store := NewStore()
	factory := NewUnitOfWorkFactory(store)

	txn, err := factory.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, txn.Commit(context.Background()))
	assert.NoError(t, txn.Commit(context.Background()))
	assert.NoError(t, txn.Rollback(context.Background()))
}

func TestUnitOfWork_SnapshotIsolatedFromConcurrentBegin(t *testing.T) {
	store := NewStore()
	store.SeedCurrency(domain.Currency{Code: "USD", IsBase: true})
	factory := NewUnitOfWorkFactory(store)

	txnA, err := factory.Begin(context.Background())
	require.NoError(t, err)
	txnB, err := factory.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, txnA.Currencies().SaveCurrency(context.Background(), domain.Currency{Code: "EUR"}))

	// txnB's snapshot was taken before txnA wrote EUR, so it must not see it
	// until txnA commits and a fresh Begin is issued.
	c, err := txnB.Currencies().FindCurrencyByCode(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Nil(t, c)

	require.NoError(t, txnA.Commit(context.Background()))
	require.NoError(t, txnB.Rollback(context.Background()))
}
