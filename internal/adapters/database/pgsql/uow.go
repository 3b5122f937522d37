package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	"github.com/SscSPs/ledger/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uowFactory implements portsrepo.UnitOfWorkFactory over a pgxpool.Pool,
// generalizing the teacher's BaseRepository.Begin/Commit/Rollback into a
// first-class scope (see DESIGN.md).
type uowFactory struct {
	pool *pgxpool.Pool
}

// NewUnitOfWorkFactory constructs a UnitOfWorkFactory backed by pool.
func NewUnitOfWorkFactory(pool *pgxpool.Pool) portsrepo.UnitOfWorkFactory {
	return &uowFactory{pool: pool}
}

func (f *uowFactory) Begin(ctx context.Context) (portsrepo.UnitOfWork, error) {
	tx, err := f.pool.Begin(ctx)
	if err != nil {
		return nil, classifyErr(err)
	}

	u := &unitOfWork{tx: tx}
	base := BaseRepository{db: tx}
	u.currencies = currencyRepo{base}
	u.accounts = accountRepo{base}
	u.journals = journalRepo{base}
	u.fxEvents = exchangeRateEventRepo{base}
	u.aggregates = aggregateRepo{base}
	return u, nil
}

type unitOfWork struct {
	tx     pgx.Tx
	closed bool

	currencies currencyRepo
	accounts   accountRepo
	journals   journalRepo
	fxEvents   exchangeRateEventRepo
	aggregates aggregateRepo
}

func (u *unitOfWork) Currencies() portsrepo.CurrencyRepository             { return u.currencies }
func (u *unitOfWork) Accounts() portsrepo.AccountRepository                { return u.accounts }
func (u *unitOfWork) Journals() portsrepo.JournalRepository                { return u.journals }
func (u *unitOfWork) ExchangeRateEvents() portsrepo.ExchangeRateEventRepository { return u.fxEvents }
func (u *unitOfWork) Aggregates() portsrepo.AggregateRepository            { return u.aggregates }

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.closed {
		logging.FromContext(ctx).Warn("commit on closed unit of work scope")
		return nil
	}
	if err := u.tx.Commit(ctx); err != nil {
		return classifyErr(err)
	}
	u.closed = true
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.closed {
		logging.FromContext(ctx).Warn("rollback on closed unit of work scope")
		return nil
	}
	u.closed = true
	if err := u.tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return classifyErr(err)
	}
	return nil
}
