package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ledger/internal/core/domain"
)

type exchangeRateEventRepo struct{ BaseRepository }

func (r exchangeRateEventRepo) SaveEvent(ctx context.Context, event domain.ExchangeRateEvent) error {
	const query = `
		INSERT INTO exchange_rate_events (id, code, rate, occurred_at, policy_applied, source)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.DB().Exec(ctx, query, event.ID, event.Code, event.Rate, event.OccurredAt, event.PolicyApplied, event.Source)
	if err != nil {
		return classifyErr(err)
	}
	return nil
}

func (r exchangeRateEventRepo) ListEvents(ctx context.Context, code *string, limit *int) ([]domain.ExchangeRateEvent, error) {
	if limit != nil && *limit < 0 {
		return []domain.ExchangeRateEvent{}, nil
	}

	query := `
		SELECT id, code, rate, occurred_at, policy_applied, source
		FROM exchange_rate_events
		WHERE ($1::text IS NULL OR code = $1)
		ORDER BY occurred_at DESC
	`
	args := []interface{}{code}
	if limit != nil {
		query += ` LIMIT $2;`
		args = append(args, *limit)
	} else {
		query += `;`
	}

	rows, err := r.DB().Query(ctx, query, args...)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer rows.Close()

	out := make([]domain.ExchangeRateEvent, 0)
	for rows.Next() {
		var e domain.ExchangeRateEvent
		if err := rows.Scan(&e.ID, &e.Code, &e.Rate, &e.OccurredAt, &e.PolicyApplied, &e.Source); err != nil {
			return nil, classifyErr(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr(err)
	}
	return out, nil
}

func (r exchangeRateEventRepo) ListOldEventIDs(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	const query = `
		SELECT id FROM exchange_rate_events
		WHERE occurred_at < $1
		ORDER BY occurred_at ASC
		LIMIT $2;
	`
	rows, err := r.DB().Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classifyErr(err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr(err)
	}
	return out, nil
}

func (r exchangeRateEventRepo) DeleteEvents(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	const query = `DELETE FROM exchange_rate_events WHERE id = ANY($1);`
	_, err := r.DB().Exec(ctx, query, ids)
	if err != nil {
		return classifyErr(err)
	}
	return nil
}

// ArchiveEvents moves the given ids to the archive table in one statement: a
// DELETE...RETURNING CTE feeds the archive INSERT, so the copy and the
// deletion commit or fail together without a separate round trip.
func (r exchangeRateEventRepo) ArchiveEvents(ctx context.Context, ids []string, archivedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	const query = `
		WITH moved AS (
			DELETE FROM exchange_rate_events WHERE id = ANY($1)
			RETURNING id, code, rate, occurred_at, policy_applied, source
		)
		INSERT INTO exchange_rate_events_archive (id, code, rate, occurred_at, policy_applied, source, archived_at)
		SELECT id, code, rate, occurred_at, policy_applied, source, $2 FROM moved;
	`
	_, err := r.DB().Exec(ctx, query, ids, archivedAt)
	if err != nil {
		return classifyErr(err)
	}
	return nil
}
