package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
)

type currencyRepo struct{ u *unitOfWork }

func (r currencyRepo) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	c, ok := r.u.d.currencies[code]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r currencyRepo) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	out := make([]domain.Currency, 0, len(r.u.d.currencies))
	codes := make([]string, 0, len(r.u.d.currencies))
	for code := range r.u.d.currencies {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		out = append(out, r.u.d.currencies[code])
	}
	return out, nil
}

func (r currencyRepo) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	if currency.IsBase {
		for code, existing := range r.u.d.currencies {
			if existing.IsBase && code != currency.Code {
				return fmt.Errorf("%w: a base currency already exists (%s)", apperrors.ErrDomain, code)
			}
		}
	}
	r.u.d.currencies[currency.Code] = currency
	return nil
}
