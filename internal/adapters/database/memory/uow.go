package memory

import (
	"context"

	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ledger/internal/logging"
)

// uowFactory implements portsrepo.UnitOfWorkFactory over a Store.
type uowFactory struct {
	store *Store
}

// NewUnitOfWorkFactory constructs a UnitOfWorkFactory backed by store.
func NewUnitOfWorkFactory(store *Store) portsrepo.UnitOfWorkFactory {
	return &uowFactory{store: store}
}

func (f *uowFactory) Begin(ctx context.Context) (portsrepo.UnitOfWork, error) {
	f.store.mu.Lock()
	snapshot := f.store.d.clone()
	f.store.mu.Unlock()

	u := &unitOfWork{store: f.store, d: snapshot}
	u.currencies = currencyRepo{u: u}
	u.accounts = accountRepo{u: u}
	u.journals = journalRepo{u: u}
	u.fxEvents = exchangeRateEventRepo{u: u}
	u.aggregates = aggregateRepo{u: u}
	return u, nil
}

// unitOfWork is a snapshot-isolated transaction over a Store's data. Commit
// publishes the snapshot back to the store; Rollback discards it. Once
// either has run, the closed flag turns any further Commit or Rollback into
// a no-op that logs a warning.
type unitOfWork struct {
	store  *Store
	d      *data
	closed bool

	currencies currencyRepo
	accounts   accountRepo
	journals   journalRepo
	fxEvents   exchangeRateEventRepo
	aggregates aggregateRepo
}

func (u *unitOfWork) Currencies() portsrepo.CurrencyRepository { return u.currencies }
func (u *unitOfWork) Accounts() portsrepo.AccountRepository    { return u.accounts }
func (u *unitOfWork) Journals() portsrepo.JournalRepository    { return u.journals }
func (u *unitOfWork) ExchangeRateEvents() portsrepo.ExchangeRateEventRepository { return u.fxEvents }
func (u *unitOfWork) Aggregates() portsrepo.AggregateRepository { return u.aggregates }

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.closed {
		logging.FromContext(ctx).Warn("commit on closed unit of work scope")
		return nil
	}
	u.store.mu.Lock()
	u.store.d = u.d
	u.store.mu.Unlock()
	u.closed = true
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.closed {
		logging.FromContext(ctx).Warn("rollback on closed unit of work scope")
		return nil
	}
	u.closed = true
	return nil
}
