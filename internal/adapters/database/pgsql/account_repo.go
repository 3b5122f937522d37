package pgsql

import (
	"context"

	"github.com/SscSPs/ledger/internal/core/domain"
)

type accountRepo struct{ BaseRepository }

func (r accountRepo) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	const query = `SELECT id, full_name, currency_code, account_type FROM accounts WHERE id = $1;`

	var a domain.Account
	err := r.DB().QueryRow(ctx, query, accountID).Scan(&a.ID, &a.FullName, &a.CurrencyCode, &a.AccountType)
	if err != nil {
		classified := classifyErr(err)
		if isNotFound(classified) {
			return nil, nil
		}
		return nil, classified
	}
	return &a, nil
}

func (r accountRepo) FindAccountByFullName(ctx context.Context, fullName string) (*domain.Account, error) {
	const query = `SELECT id, full_name, currency_code, account_type FROM accounts WHERE full_name = $1;`

	var a domain.Account
	err := r.DB().QueryRow(ctx, query, fullName).Scan(&a.ID, &a.FullName, &a.CurrencyCode, &a.AccountType)
	if err != nil {
		classified := classifyErr(err)
		if isNotFound(classified) {
			return nil, nil
		}
		return nil, classified
	}
	return &a, nil
}

func (r accountRepo) FindAccountsByFullNames(ctx context.Context, fullNames []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(fullNames))
	if len(fullNames) == 0 {
		return out, nil
	}

	const query = `SELECT id, full_name, currency_code, account_type FROM accounts WHERE full_name = ANY($1);`

	rows, err := r.DB().Query(ctx, query, fullNames)
	if err != nil {
		return nil, classifyErr(err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.FullName, &a.CurrencyCode, &a.AccountType); err != nil {
			return nil, classifyErr(err)
		}
		out[a.FullName] = a
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr(err)
	}
	return out, nil
}

func (r accountRepo) SaveAccount(ctx context.Context, account domain.Account) error {
	const query = `
		INSERT INTO accounts (id, full_name, currency_code, account_type)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING;
	`
	_, err := r.DB().Exec(ctx, query, account.ID, account.FullName, account.CurrencyCode, account.AccountType)
	if err != nil {
		return classifyErr(err)
	}
	return nil
}
