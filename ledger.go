// Package ledger is the embeddable public facade of the double-entry
// ledger library: a single Ledger value wiring the use-case services in
// internal/core/services behind the repository contracts in
// internal/core/ports/repositories. Grounded on the teacher's cmd/mma_backend
// main.go wiring section, which constructs each service with its concrete
// repository dependencies by hand; generalized here into a constructor an
// embedder calls once per process, passing in whichever UnitOfWorkFactory
// backs its storage choice (the pgsql adapter in production, the memory
// adapter in tests).
package ledger

import (
	"context"
	"time"

	"github.com/SscSPs/ledger/internal/config"
	"github.com/SscSPs/ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/SscSPs/ledger/internal/core/services"
	"github.com/shopspring/decimal"
)

// Domain types re-exported so embedders never need to import the internal
// package tree directly.
type (
	Account                   = domain.Account
	AccountType               = domain.AccountType
	Currency                  = domain.Currency
	Side                      = domain.Side
	EntryLine                 = domain.EntryLine
	TransactionLine           = domain.TransactionLine
	Journal                   = domain.Journal
	ExchangeRateEvent         = domain.ExchangeRateEvent
	ArchivedExchangeRateEvent = domain.ArchivedExchangeRateEvent
	AccountBalance            = domain.AccountBalance
	AccountDailyTurnover      = domain.AccountDailyTurnover
	RawTradingLine            = domain.RawTradingLine
	DetailedTradingLine       = domain.DetailedTradingLine
	ParityLine                = domain.ParityLine
	ParityReport              = domain.ParityReport
	TTLMode                   = domain.TTLMode
	TTLPlan                   = domain.TTLPlan
	TTLResult                 = domain.TTLResult
	BatchWindow               = domain.BatchWindow
)

const (
	Debit  = domain.Debit
	Credit = domain.Credit

	TTLModeNone    = domain.TTLModeNone
	TTLModeDelete  = domain.TTLModeDelete
	TTLModeArchive = domain.TTLModeArchive
)

// Request/response DTOs re-exported from the services port.
type (
	PostTransactionRequest     = portssvc.PostTransactionRequest
	LedgerQueryRequest         = portssvc.LedgerQueryRequest
	TradingBalanceRequest      = portssvc.TradingBalanceRequest
	AddExchangeRateEventRequest = portssvc.AddExchangeRateEventRequest
	TTLPlanRequest             = portssvc.TTLPlanRequest
	ParityRequest              = portssvc.ParityRequest
)

// UnitOfWorkFactory is the storage seam an embedder supplies to New: the
// pgsql adapter for production, the memory adapter for tests.
type UnitOfWorkFactory = portsrepo.UnitOfWorkFactory

// Clock abstracts time.Now for reproducible postings (spec §4.3 step 6).
// Embedders that don't need deterministic clocks can pass nil to New and
// get services.SystemClock.
type Clock = services.Clock

// Settings is the immutable configuration value produced by config.Load or
// built by hand.
type Settings = config.Settings

// Ledger wires all seven use-case services behind one value. It holds no
// state of its own beyond the wired services; all ledger state lives behind
// the UnitOfWorkFactory passed to New.
type Ledger struct {
	posting  portssvc.PostingSvc
	balance  portssvc.BalanceSvc
	ledger   portssvc.LedgerSvc
	trading  portssvc.TradingBalanceSvc
	fxEvents portssvc.ExchangeRateEventSvc
	fxTTL    portssvc.FXAuditTTLSvc
	parity   portssvc.ParitySvc
}

// New wires a Ledger over uow using settings' quantization scales and retry
// policy. clock may be nil, in which case every service falls back to
// services.SystemClock.
func New(uow portsrepo.UnitOfWorkFactory, settings Settings, clock Clock) *Ledger {
	retry := services.RetryConfig{
		Attempts:   settings.DB.RetryAttempts,
		Backoff:    settings.DB.RetryBackoff,
		MaxBackoff: settings.DB.RetryMaxBackoff,
	}
	moneyScale := settings.Quantize.MoneyScale
	rateScale := settings.Quantize.RateScale

	return &Ledger{
		posting:  services.NewPostingService(uow, clock, moneyScale, retry),
		balance:  services.NewBalanceService(uow, clock, moneyScale),
		ledger:   services.NewLedgerQueryService(uow, clock),
		trading:  services.NewTradingBalanceService(uow, clock, moneyScale, rateScale),
		fxEvents: services.NewExchangeRateEventService(uow, rateScale),
		fxTTL:    services.NewFXAuditTTLService(uow, clock),
		parity:   services.NewParityService(uow),
	}
}

// Post validates and commits a balanced journal (spec §4.3).
func (l *Ledger) Post(ctx context.Context, req PostTransactionRequest) (*Journal, error) {
	return l.posting.Post(ctx, req)
}

// Balance returns accountFullName's current balance, or its balance as of a
// point in time when asOf is non-nil (spec §4.4).
func (l *Ledger) Balance(ctx context.Context, accountFullName string, asOf *time.Time) (decimal.Decimal, error) {
	return l.balance.Balance(ctx, accountFullName, asOf)
}

// GetLedger lists journals matching req (spec §4.5).
func (l *Ledger) GetLedger(ctx context.Context, req LedgerQueryRequest) ([]Journal, error) {
	return l.ledger.Ledger(ctx, req)
}

// TradingRaw returns unconverted per-currency debit/credit/net totals over
// req's window (spec §4.6).
func (l *Ledger) TradingRaw(ctx context.Context, req TradingBalanceRequest) ([]RawTradingLine, error) {
	return l.trading.Raw(ctx, req)
}

// TradingDetailed is TradingRaw additionally converted into the base
// currency (spec §4.6).
func (l *Ledger) TradingDetailed(ctx context.Context, req TradingBalanceRequest) ([]DetailedTradingLine, error) {
	return l.trading.Detailed(ctx, req)
}

// AddExchangeRateEvent appends one FX-audit record (spec §4.7).
func (l *Ledger) AddExchangeRateEvent(ctx context.Context, req AddExchangeRateEventRequest) (*ExchangeRateEvent, error) {
	return l.fxEvents.Add(ctx, req)
}

// ListExchangeRateEvents lists FX-audit records, newest first, optionally
// filtered by currency code and truncated to limit (spec §4.7).
func (l *Ledger) ListExchangeRateEvents(ctx context.Context, code *string, limit *int) ([]ExchangeRateEvent, error) {
	return l.fxEvents.List(ctx, code, limit)
}

// PlanFXAudit computes a TTLPlan for the given retention/batch parameters
// without mutating anything (spec §4.8).
func (l *Ledger) PlanFXAudit(ctx context.Context, req TTLPlanRequest) (*TTLPlan, error) {
	return l.fxTTL.Plan(ctx, req)
}

// ExecuteFXAudit applies a previously computed TTLPlan (spec §4.9).
func (l *Ledger) ExecuteFXAudit(ctx context.Context, plan TTLPlan) (*TTLResult, error) {
	return l.fxTTL.Execute(ctx, plan)
}

// Parity reports per-currency rate deviation from parity (spec §4.11).
func (l *Ledger) Parity(ctx context.Context, req ParityRequest) (*ParityReport, error) {
	return l.parity.Parity(ctx, req)
}
