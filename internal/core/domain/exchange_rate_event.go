package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateEvent is one append-only audit record of an FX rate change.
// Events are never updated; they may only be deleted or archived by the
// FX-audit TTL executor.
type ExchangeRateEvent struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Rate          decimal.Decimal `json:"rate"` // positive, 6-scale
	OccurredAt    time.Time       `json:"occurredAt"`
	PolicyApplied string          `json:"policyApplied"`
	Source        string          `json:"source,omitempty"`
}

// ArchivedExchangeRateEvent is the same shape plus the timestamp the TTL
// executor recorded when the row was moved to the archive table.
type ArchivedExchangeRateEvent struct {
	ExchangeRateEvent
	ArchivedAt time.Time `json:"archivedAt"`
}
