// Package services defines the use-case facades the ledger core exposes to
// embedders, mirroring the teacher's internal/core/ports/services package.
package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostTransactionRequest is the input to PostingSvc.Post (spec §4.3).
type PostTransactionRequest struct {
	Lines []domain.EntryLine
	Memo  string
	Meta  map[string]interface{}
}

// PostingSvc is the posting pipeline use-case (spec §4.3).
type PostingSvc interface {
	Post(ctx context.Context, req PostTransactionRequest) (*domain.Journal, error)
}

// BalanceSvc is the GetAccountBalance use-case (spec §4.4).
type BalanceSvc interface {
	Balance(ctx context.Context, accountFullName string, asOf *time.Time) (decimal.Decimal, error)
}

// LedgerQueryRequest is the input to LedgerSvc.Ledger (spec §4.5).
type LedgerQueryRequest struct {
	AccountFullName string
	Start           *time.Time
	End             *time.Time
	Meta            map[string]interface{}
	Offset          int
	Limit           *int
	Order           string
}

// LedgerSvc is the GetLedger use-case (spec §4.5).
type LedgerSvc interface {
	Ledger(ctx context.Context, req LedgerQueryRequest) ([]domain.Journal, error)
}

// TradingBalanceRequest is shared input to Raw and Detailed.
type TradingBalanceRequest struct {
	Start         *time.Time
	End           *time.Time
	Meta          map[string]interface{}
	BaseCurrency  *string // Detailed only
}

// TradingBalanceSvc is the trading-balance aggregators use-case (spec §4.6).
type TradingBalanceSvc interface {
	Raw(ctx context.Context, req TradingBalanceRequest) ([]domain.RawTradingLine, error)
	Detailed(ctx context.Context, req TradingBalanceRequest) ([]domain.DetailedTradingLine, error)
}

// AddExchangeRateEventRequest is the input to ExchangeRateEventSvc.Add
// (spec §4.7).
type AddExchangeRateEventRequest struct {
	Code          string
	Rate          decimal.Decimal
	OccurredAt    time.Time
	PolicyApplied string
	Source        string
}

// ExchangeRateEventSvc is the FX-audit append/list use-case (spec §4.7).
type ExchangeRateEventSvc interface {
	Add(ctx context.Context, req AddExchangeRateEventRequest) (*domain.ExchangeRateEvent, error)
	List(ctx context.Context, code *string, limit *int) ([]domain.ExchangeRateEvent, error)
}

// TTLPlanRequest is the input to FXAuditTTLSvc.Plan (spec §4.8).
type TTLPlanRequest struct {
	RetentionDays int
	BatchSize     int
	Mode          string
	Limit         *int
	DryRun        bool
}

// FXAuditTTLSvc is the FX-audit TTL planner/executor use-case (spec §4.8,
// §4.9).
type FXAuditTTLSvc interface {
	Plan(ctx context.Context, req TTLPlanRequest) (*domain.TTLPlan, error)
	Execute(ctx context.Context, plan domain.TTLPlan) (*domain.TTLResult, error)
}

// ParityRequest is the input to ParitySvc.Parity (spec §4.11).
type ParityRequest struct {
	BaseOnly   bool
	Codes      []string
	IncludeDev bool
}

// ParitySvc is the parity-report use-case (spec §4.11).
type ParitySvc interface {
	Parity(ctx context.Context, req ParityRequest) (*domain.ParityReport, error)
}
