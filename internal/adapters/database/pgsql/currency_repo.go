package pgsql

import (
	"context"

	"github.com/SscSPs/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

type currencyRepo struct{ BaseRepository }

func (r currencyRepo) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	const query = `SELECT code, exchange_rate, is_base FROM currencies WHERE code = $1;`

	var c domain.Currency
	var rate *decimal.Decimal
	err := r.DB().QueryRow(ctx, query, code).Scan(&c.Code, &rate, &c.IsBase)
	if err != nil {
		classified := classifyErr(err)
		if isNotFound(classified) {
			return nil, nil
		}
		return nil, classified
	}
	c.ExchangeRate = rate
	return &c, nil
}

func (r currencyRepo) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	const query = `SELECT code, exchange_rate, is_base FROM currencies ORDER BY code ASC;`

	rows, err := r.DB().Query(ctx, query)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer rows.Close()

	out := make([]domain.Currency, 0)
	for rows.Next() {
		var c domain.Currency
		var rate *decimal.Decimal
		if err := rows.Scan(&c.Code, &rate, &c.IsBase); err != nil {
			return nil, classifyErr(err)
		}
		c.ExchangeRate = rate
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr(err)
	}
	return out, nil
}

func (r currencyRepo) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	const query = `
		INSERT INTO currencies (code, exchange_rate, is_base)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET exchange_rate = EXCLUDED.exchange_rate, is_base = EXCLUDED.is_base;
	`
	_, err := r.DB().Exec(ctx, query, currency.Code, currency.ExchangeRate, currency.IsBase)
	if err != nil {
		return classifyErr(err)
	}
	return nil
}
