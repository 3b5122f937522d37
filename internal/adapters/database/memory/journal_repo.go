package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type journalRepo struct{ u *unitOfWork }

func (r journalRepo) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	j, ok := r.u.d.journals[journalID]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (r journalRepo) FindJournalByIdempotencyKey(ctx context.Context, key string) (*domain.Journal, error) {
	id, ok := r.u.d.byIdemKey[key]
	if !ok {
		return nil, nil
	}
	j := r.u.d.journals[id]
	return &j, nil
}

func (r journalRepo) SaveJournal(ctx context.Context, journal domain.Journal) error {
	r.u.d.journals[journal.ID] = journal
	if journal.IdempotencyKey != "" {
		r.u.d.byIdemKey[journal.IdempotencyKey] = journal.ID
	}
	return nil
}

func metaMatches(meta, filter map[string]interface{}) bool {
	for k, v := range filter {
		mv, ok := meta[k]
		if !ok || mv != v {
			return false
		}
	}
	return true
}

func (r journalRepo) ListLedger(ctx context.Context, q portsrepo.LedgerQuery) ([]domain.Journal, error) {
	accountID, ok := r.u.d.byFullName[q.AccountFullName]
	if !ok {
		return []domain.Journal{}, nil
	}

	matches := make([]domain.Journal, 0)
	for _, j := range r.u.d.journals {
		if j.OccurredAt.Before(q.Start) || j.OccurredAt.After(q.End) {
			continue
		}
		if !metaMatches(j.Meta, q.Meta) {
			continue
		}
		found := false
		for _, l := range j.Lines {
			if l.AccountID == accountID {
				found = true
				break
			}
		}
		if !found {
			continue
		}
		matches = append(matches, j)
	}

	sort.Slice(matches, func(i, k int) bool {
		if q.Order == "DESC" {
			return matches[i].OccurredAt.After(matches[k].OccurredAt)
		}
		return matches[i].OccurredAt.Before(matches[k].OccurredAt)
	})

	if q.Offset >= len(matches) {
		return []domain.Journal{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[q.Offset:end], nil
}

func (r journalRepo) SumLinesForAccount(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	debit := decimal.Zero
	credit := decimal.Zero
	for _, j := range r.u.d.journals {
		if j.OccurredAt.After(asOf) {
			continue
		}
		for _, l := range j.Lines {
			if l.AccountID != accountID {
				continue
			}
			if l.Side == domain.Debit {
				debit = debit.Add(l.Amount)
			} else {
				credit = credit.Add(l.Amount)
			}
		}
	}
	return debit, credit, nil
}

func (r journalRepo) ListLinesInWindow(ctx context.Context, start, end time.Time, meta map[string]interface{}) ([]domain.TransactionLine, error) {
	out := make([]domain.TransactionLine, 0)
	for _, j := range r.u.d.journals {
		if j.OccurredAt.Before(start) || j.OccurredAt.After(end) {
			continue
		}
		if !metaMatches(j.Meta, meta) {
			continue
		}
		out = append(out, j.Lines...)
	}
	return out, nil
}
