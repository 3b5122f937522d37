package repositories

import "context"

// UnitOfWork is a scoped transactional context under which the repository
// operations it exposes commit atomically. It is the generalization of the
// teacher's per-repository TransactionManager/BaseRepository.Begin-Commit-
// Rollback into the spec's first-class boundary (spec §1.2, §5).
//
// Re-entering an already-open UnitOfWork is a programming error; separate
// Begin calls on a UnitOfWorkFactory open independent scopes. Commit/Rollback on a
// UnitOfWork whose scope is already closed are no-ops that log a warning,
// per spec §5.
type UnitOfWork interface {
	Currencies() CurrencyRepository
	Accounts() AccountRepository
	Journals() JournalRepository
	ExchangeRateEvents() ExchangeRateEventRepository
	Aggregates() AggregateRepository

	// Commit commits the underlying transaction. It may retry internally on
	// transient errors with exponential backoff (spec §5); non-transient
	// errors propagate immediately.
	Commit(ctx context.Context) error

	// Rollback rolls back the underlying transaction.
	Rollback(ctx context.Context) error
}

// UnitOfWorkFactory opens a new UnitOfWork scoped to one request. The
// returned UnitOfWork guarantees release of its connection/transaction on
// every exit path; callers must always end the scope with exactly one
// Commit or Rollback call.
type UnitOfWorkFactory interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}
