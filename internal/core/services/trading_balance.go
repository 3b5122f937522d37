package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/SscSPs/ledger/internal/quantize"
	"github.com/shopspring/decimal"
)

// tradingBalanceService implements portssvc.TradingBalanceSvc (spec §4.6).
type tradingBalanceService struct {
	uow        portsrepo.UnitOfWorkFactory
	clock      Clock
	moneyScale int32
	rateScale  int32
}

// NewTradingBalanceService constructs the Raw/Detailed aggregators use-case.
func NewTradingBalanceService(uow portsrepo.UnitOfWorkFactory, clock Clock, moneyScale, rateScale int32) portssvc.TradingBalanceSvc {
	if clock == nil {
		clock = SystemClock{}
	}
	return &tradingBalanceService{uow: uow, clock: clock, moneyScale: moneyScale, rateScale: rateScale}
}

type currencyTotals struct {
	debit  decimal.Decimal
	credit decimal.Decimal
}

func (s *tradingBalanceService) window(ctx context.Context, req portssvc.TradingBalanceRequest) (portsrepo.UnitOfWork, map[string]currencyTotals, error) {
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
		return nil, nil, fmt.Errorf("%w: start must not be after end", apperrors.ErrValidation)
	}

	txn, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open unit of work: %v", apperrors.ErrUnexpected, err)
	}

	lines, err := txn.Journals().ListLinesInWindow(ctx, start, end, req.Meta)
	if err != nil {
		_ = txn.Rollback(ctx)
		return nil, nil, err
	}

	totals := make(map[string]currencyTotals)
	for _, l := range lines {
		t := totals[l.CurrencyCode]
		if l.Side == domain.Debit {
			t.debit = t.debit.Add(l.Amount)
		} else {
			t.credit = t.credit.Add(l.Amount)
		}
		totals[l.CurrencyCode] = t
	}
	return txn, totals, nil
}

func (s *tradingBalanceService) Raw(ctx context.Context, req portssvc.TradingBalanceRequest) ([]domain.RawTradingLine, error) {
	txn, totals, err := s.window(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = txn.Rollback(ctx) }()

	codes := make([]string, 0, len(totals))
	for code := range totals {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	lines := make([]domain.RawTradingLine, 0, len(codes))
	for _, code := range codes {
		t := totals[code]
		lines = append(lines, domain.RawTradingLine{
			CurrencyCode: code,
			Debit:        t.debit,
			Credit:       t.credit,
			Net:          t.debit.Sub(t.credit),
		})
	}
	return lines, nil
}

func (s *tradingBalanceService) Detailed(ctx context.Context, req portssvc.TradingBalanceRequest) ([]domain.DetailedTradingLine, error) {
	txn, totals, err := s.window(ctx, req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = txn.Rollback(ctx) }()

	base, err := s.resolveBase(ctx, txn, req.BaseCurrency)
	if err != nil {
		return nil, err
	}

	currencies := make(map[string]domain.Currency)
	codes := make([]string, 0, len(totals))
	for code := range totals {
		codes = append(codes, code)
		c, err := txn.Currencies().FindCurrencyByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if c != nil {
			currencies[code] = *c
		}
	}
	sort.Strings(codes)

	lines := make([]domain.DetailedTradingLine, 0, len(codes))
	for _, code := range codes {
		t := totals[code]
		var rate decimal.Decimal
		if code == base.Code {
			rate = decimal.NewFromInt(1)
		} else {
			c, ok := currencies[code]
			if !ok {
				return nil, fmt.Errorf("%w: currency %q not found", apperrors.ErrNotFound, code)
			}
			eff, ok := c.EffectiveRate()
			if !ok {
				return nil, fmt.Errorf("%w: currency %q has no positive rate", apperrors.ErrValidation, code)
			}
			rate = eff
		}
		usedRate := quantize.Rate(rate, s.rateScale)
		debitBase := quantize.Money(t.debit.Mul(usedRate), s.moneyScale)
		creditBase := quantize.Money(t.credit.Mul(usedRate), s.moneyScale)
		lines = append(lines, domain.DetailedTradingLine{
			RawTradingLine: domain.RawTradingLine{
				CurrencyCode: code,
				Debit:        t.debit,
				Credit:       t.credit,
				Net:          t.debit.Sub(t.credit),
			},
			UsedRate:   usedRate,
			DebitBase:  debitBase,
			CreditBase: creditBase,
			NetBase:    quantize.Money(t.debit.Sub(t.credit).Mul(usedRate), s.moneyScale),
		})
	}
	return lines, nil
}

// resolveBase determines the base currency: the explicit override if given
// (must exist and be marked base), else the currency repository's single
// base currency.
func (s *tradingBalanceService) resolveBase(ctx context.Context, txn portsrepo.UnitOfWork, override *string) (*domain.Currency, error) {
	if override != nil {
		c, err := txn.Currencies().FindCurrencyByCode(ctx, *override)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: base currency %q not found", apperrors.ErrValidation, *override)
		}
		if !c.IsBase {
			return nil, fmt.Errorf("%w: currency %q is not marked as base", apperrors.ErrValidation, *override)
		}
		return c, nil
	}
	all, err := txn.Currencies().ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.IsBase {
			cc := c
			return &cc, nil
		}
	}
	return nil, fmt.Errorf("%w: no base currency defined", apperrors.ErrValidation)
}
