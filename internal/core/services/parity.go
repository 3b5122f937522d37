package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// parityService implements portssvc.ParitySvc (spec §4.11).
type parityService struct {
	uow portsrepo.UnitOfWorkFactory
}

// NewParityService constructs the parity-report use-case.
func NewParityService(uow portsrepo.UnitOfWorkFactory) portssvc.ParitySvc {
	return &parityService{uow: uow}
}

func (s *parityService) Parity(ctx context.Context, req portssvc.ParityRequest) (*domain.ParityReport, error) {
	txn, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open unit of work: %v", apperrors.ErrUnexpected, err)
	}
	defer func() { _ = txn.Rollback(ctx) }()

	all, err := txn.Currencies().ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(req.Codes))
	for _, c := range req.Codes {
		wanted[c] = struct{}{}
	}

	hasBase := false
	for _, c := range all {
		if c.IsBase {
			hasBase = true
			break
		}
	}

	selected := make([]domain.Currency, 0, len(all))
	for _, c := range all {
		if req.BaseOnly && !c.IsBase {
			continue
		}
		if len(wanted) > 0 {
			if _, ok := wanted[c.Code]; !ok {
				continue
			}
		}
		selected = append(selected, c)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i].Code < selected[j].Code })

	report := &domain.ParityReport{Lines: make([]domain.ParityLine, 0, len(selected))}
	for _, c := range selected {
		line := domain.ParityLine{CurrencyCode: c.Code, IsBase: c.IsBase}
		if !c.IsBase && c.ExchangeRate != nil {
			rate := *c.ExchangeRate
			line.LatestRate = &rate
			if req.IncludeDev && hasBase {
				dev := rate.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
				line.Deviation = &dev
				report.HasDeviation = true
			}
		}
		report.Lines = append(report.Lines, line)
	}
	return report, nil
}
