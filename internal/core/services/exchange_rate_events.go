package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/SscSPs/ledger/internal/quantize"
	"github.com/google/uuid"
)

// exchangeRateEventService implements portssvc.ExchangeRateEventSvc (spec
// §4.7), grounded on the teacher's exchangeRateService.CreateExchangeRate
// generalized from a from/to currency pair into the spec's single-currency
// append-only audit event.
type exchangeRateEventService struct {
	uow       portsrepo.UnitOfWorkFactory
	rateScale int32
}

// NewExchangeRateEventService constructs the FX-audit append/list use-case.
func NewExchangeRateEventService(uow portsrepo.UnitOfWorkFactory, rateScale int32) portssvc.ExchangeRateEventSvc {
	return &exchangeRateEventService{uow: uow, rateScale: rateScale}
}

func (s *exchangeRateEventService) Add(ctx context.Context, req portssvc.AddExchangeRateEventRequest) (*domain.ExchangeRateEvent, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !currencyCodePattern.MatchString(code) {
		return nil, fmt.Errorf("%w: currency code %q is malformed", apperrors.ErrValidation, req.Code)
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}

	event := domain.ExchangeRateEvent{
		ID:            uuid.NewString(),
		Code:          code,
		Rate:          quantize.Rate(req.Rate, s.rateScale),
		OccurredAt:    req.OccurredAt.UTC(),
		PolicyApplied: req.PolicyApplied,
		Source:        req.Source,
	}

	txn, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open unit of work: %v", apperrors.ErrUnexpected, err)
	}
	defer func() { _ = txn.Rollback(ctx) }()

	if err := txn.ExchangeRateEvents().SaveEvent(ctx, event); err != nil {
		return nil, err
	}
	if err := commitWithRetry(ctx, DefaultRetryConfig, txn.Commit); err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *exchangeRateEventService) List(ctx context.Context, code *string, limit *int) ([]domain.ExchangeRateEvent, error) {
	if limit != nil && *limit < 0 {
		return []domain.ExchangeRateEvent{}, nil
	}

	txn, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open unit of work: %v", apperrors.ErrUnexpected, err)
	}
	defer func() { _ = txn.Rollback(ctx) }()

	return txn.ExchangeRateEvents().ListEvents(ctx, code, limit)
}
