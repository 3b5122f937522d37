// Package memory provides test-only in-memory repository/UnitOfWork
// adapters, per the teacher's design note ("test-only in-memory adapters...
// so property tests can avoid real I/O", carried from the source's
// Protocol-based repository ports pattern). A Begin() snapshots the whole
// store; Commit() publishes the snapshot back; Rollback() discards it. Units
// of work are not serialized against each other: Commit replaces the store's
// state with its own snapshot, so changes committed by another unit of work
// after this one's Begin are overwritten. No real database is needed for
// unit/property tests.
package memory

import (
	"sync"
	"time"

	"github.com/SscSPs/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type turnoverKey struct {
	accountID string
	day       time.Time
}

// data is the mutable state snapshotted at Begin and published at Commit.
type data struct {
	currencies map[string]domain.Currency
	accounts   map[string]domain.Account // by ID
	byFullName map[string]string         // full name -> ID
	journals   map[string]domain.Journal
	byIdemKey  map[string]string // idempotency key -> journal ID
	balances   map[string]decimal.Decimal
	turnovers  map[turnoverKey][2]decimal.Decimal // [debit, credit]
	fxEvents   map[string]domain.ExchangeRateEvent
	fxArchive  map[string]domain.ArchivedExchangeRateEvent
}

func newData() *data {
	return &data{
		currencies: make(map[string]domain.Currency),
		accounts:   make(map[string]domain.Account),
		byFullName: make(map[string]string),
		journals:   make(map[string]domain.Journal),
		byIdemKey:  make(map[string]string),
		balances:   make(map[string]decimal.Decimal),
		turnovers:  make(map[turnoverKey][2]decimal.Decimal),
		fxEvents:   make(map[string]domain.ExchangeRateEvent),
		fxArchive:  make(map[string]domain.ArchivedExchangeRateEvent),
	}
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.currencies {
		c.currencies[k] = v
	}
	for k, v := range d.accounts {
		c.accounts[k] = v
	}
	for k, v := range d.byFullName {
		c.byFullName[k] = v
	}
	for k, v := range d.journals {
		lines := make([]domain.TransactionLine, len(v.Lines))
		copy(lines, v.Lines)
		v.Lines = lines
		c.journals[k] = v
	}
	for k, v := range d.byIdemKey {
		c.byIdemKey[k] = v
	}
	for k, v := range d.balances {
		c.balances[k] = v
	}
	for k, v := range d.turnovers {
		c.turnovers[k] = v
	}
	for k, v := range d.fxEvents {
		c.fxEvents[k] = v
	}
	for k, v := range d.fxArchive {
		c.fxArchive[k] = v
	}
	return c
}

// Store is the shared backing state for an in-memory ledger.
type Store struct {
	mu sync.Mutex
	d  *data
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{d: newData()}
}

// SeedCurrency is a convenience for tests to populate a currency without
// going through a Unit-of-Work.
func (s *Store) SeedCurrency(c domain.Currency) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.currencies[c.Code] = c
}

// SeedAccount is a convenience for tests to populate an account without
// going through a Unit-of-Work.
func (s *Store) SeedAccount(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.d.accounts[a.ID] = a
	s.d.byFullName[a.FullName] = a.ID
}
