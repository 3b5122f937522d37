package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
)

// ledgerQueryService implements portssvc.LedgerSvc (spec §4.5).
type ledgerQueryService struct {
	uow   portsrepo.UnitOfWorkFactory
	clock Clock
}

// NewLedgerQueryService constructs the GetLedger use-case.
func NewLedgerQueryService(uow portsrepo.UnitOfWorkFactory, clock Clock) portssvc.LedgerSvc {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ledgerQueryService{uow: uow, clock: clock}
}

func (s *ledgerQueryService) Ledger(ctx context.Context, req portssvc.LedgerQueryRequest) ([]domain.Journal, error) {
	if !strings.Contains(req.AccountFullName, ":") {
		return nil, fmt.Errorf("%w: account_full_name must contain at least one ':' separator", apperrors.ErrValidation)
	}

	now := s.clock.Now().UTC()
	start := time.Unix(0, 0).UTC()
	if req.Start != nil {
		start = *req.Start
	}
	end := now
	if req.End != nil {
		end = *req.End
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: start must not be after end", apperrors.ErrValidation)
	}

	// An omitted limit means "no caller-imposed cap" (spec §4.5 names no
	// default); only an explicitly supplied non-positive limit triggers the
	// empty-list edge case.
	limit := math.MaxInt32
	if req.Limit != nil {
		limit = *req.Limit
	}
	if req.Offset < 0 || limit <= 0 {
		return []domain.Journal{}, nil
	}

	order := strings.ToUpper(strings.TrimSpace(req.Order))
	switch order {
	case "", "ASC":
		order = "ASC"
	case "DESC":
		order = "DESC"
	default:
		return nil, fmt.Errorf("%w: order must be ASC or DESC, got %q", apperrors.ErrValidation, req.Order)
	}

	txn, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open unit of work: %v", apperrors.ErrUnexpected, err)
	}
	defer func() { _ = txn.Rollback(ctx) }()

	return txn.Journals().ListLedger(ctx, portsrepo.LedgerQuery{
		AccountFullName: req.AccountFullName,
		Start:           start,
		End:             end,
		Meta:            req.Meta,
		Offset:          req.Offset,
		Limit:           limit,
		Order:           order,
	})
}
