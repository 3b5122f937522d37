package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerQuery is the resolved, normalized set of filters for GetLedger
// (spec §4.5). Order has already been normalized to "ASC"/"DESC".
type LedgerQuery struct {
	AccountFullName string
	Start           time.Time
	End             time.Time
	Meta            map[string]interface{}
	Offset          int
	Limit           int
	Order           string
}

// JournalRepository is the read/write port for journals and their lines.
type JournalRepository interface {
	// FindJournalByID retrieves a journal, including its lines.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalByIdempotencyKey returns the journal previously created with
	// this idempotency key, or nil if none exists.
	FindJournalByIdempotencyKey(ctx context.Context, key string) (*domain.Journal, error)

	// SaveJournal inserts the journal and its lines in the provided order.
	// Must run under the caller's Unit-of-Work transaction.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// ListLedger returns journals containing at least one line on the
	// queried account, filtered, ordered, and paged per LedgerQuery.
	ListLedger(ctx context.Context, q LedgerQuery) ([]domain.Journal, error)

	// SumLinesForAccount sums DEBIT and CREDIT amounts for accountID over
	// all committed lines with OccurredAt <= asOf. Used by GetAccountBalance's
	// historical fallback scan (spec §4.4).
	SumLinesForAccount(ctx context.Context, accountID string, asOf time.Time) (debit, credit decimal.Decimal, err error)

	// ListLinesInWindow returns every transaction line whose journal falls
	// within [start, end] and matches meta, for the trading-balance
	// aggregators (spec §4.6).
	ListLinesInWindow(ctx context.Context, start, end time.Time, meta map[string]interface{}) ([]domain.TransactionLine, error)
}
