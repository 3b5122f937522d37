package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger/internal/core/domain"
)

type exchangeRateEventRepo struct{ u *unitOfWork }

func (r exchangeRateEventRepo) SaveEvent(ctx context.Context, event domain.ExchangeRateEvent) error {
	r.u.d.fxEvents[event.ID] = event
	return nil
}

func (r exchangeRateEventRepo) ListEvents(ctx context.Context, code *string, limit *int) ([]domain.ExchangeRateEvent, error) {
	if limit != nil && *limit < 0 {
		return []domain.ExchangeRateEvent{}, nil
	}

	matches := make([]domain.ExchangeRateEvent, 0, len(r.u.d.fxEvents))
	for _, e := range r.u.d.fxEvents {
		if code != nil && e.Code != *code {
			continue
		}
		matches = append(matches, e)
	}
	sort.Slice(matches, func(i, k int) bool {
		return matches[i].OccurredAt.After(matches[k].OccurredAt)
	})
	if limit != nil && *limit < len(matches) {
		matches = matches[:*limit]
	}
	return matches, nil
}

func (r exchangeRateEventRepo) ListOldEventIDs(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	matches := make([]domain.ExchangeRateEvent, 0)
	for _, e := range r.u.d.fxEvents {
		if e.OccurredAt.Before(cutoff) {
			matches = append(matches, e)
		}
	}
	sort.Slice(matches, func(i, k int) bool {
		return matches[i].OccurredAt.Before(matches[k].OccurredAt)
	})
	if limit >= 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	ids := make([]string, len(matches))
	for i, e := range matches {
		ids[i] = e.ID
	}
	return ids, nil
}

func (r exchangeRateEventRepo) DeleteEvents(ctx context.Context, ids []string) error {
	for _, id := range ids {
		delete(r.u.d.fxEvents, id)
	}
	return nil
}

func (r exchangeRateEventRepo) ArchiveEvents(ctx context.Context, ids []string, archivedAt time.Time) error {
	for _, id := range ids {
		e, ok := r.u.d.fxEvents[id]
		if !ok {
			continue
		}
		r.u.d.fxArchive[id] = domain.ArchivedExchangeRateEvent{ExchangeRateEvent: e, ArchivedAt: archivedAt}
		delete(r.u.d.fxEvents, id)
	}
	return nil
}
