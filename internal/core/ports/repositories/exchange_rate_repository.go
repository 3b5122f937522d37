package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger/internal/core/domain"
)

// ExchangeRateEventRepository is the append-only audit log port for FX rate
// changes (spec §4.7) plus the scan/delete/archive primitives the TTL
// planner and executor (spec §4.8, §4.9) are built on.
type ExchangeRateEventRepository interface {
	// SaveEvent appends a new event; no dedup.
	SaveEvent(ctx context.Context, event domain.ExchangeRateEvent) error

	// ListEvents returns events newest-first by OccurredAt, optionally
	// filtered by code, capped at limit (a negative limit yields an empty
	// list per spec §4.7).
	ListEvents(ctx context.Context, code *string, limit *int) ([]domain.ExchangeRateEvent, error)

	// ListOldEventIDs returns up to limit ids of events with
	// OccurredAt < cutoff, in ascending time order.
	ListOldEventIDs(ctx context.Context, cutoff time.Time, limit int) ([]string, error)

	// DeleteEvents deletes the given ids from the live table.
	DeleteEvents(ctx context.Context, ids []string) error

	// ArchiveEvents copies the given ids into the archive table (stamped
	// with archivedAt) and deletes them from the live table, as one
	// transactional step.
	ArchiveEvents(ctx context.Context, ids []string, archivedAt time.Time) error
}
