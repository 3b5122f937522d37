package memory

import (
	"context"

	"github.com/SscSPs/ledger/internal/core/domain"
)

type accountRepo struct{ u *unitOfWork }

func (r accountRepo) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	a, ok := r.u.d.accounts[accountID]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r accountRepo) FindAccountByFullName(ctx context.Context, fullName string) (*domain.Account, error) {
	id, ok := r.u.d.byFullName[fullName]
	if !ok {
		return nil, nil
	}
	a := r.u.d.accounts[id]
	return &a, nil
}

func (r accountRepo) FindAccountsByFullNames(ctx context.Context, fullNames []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(fullNames))
	for _, name := range fullNames {
		id, ok := r.u.d.byFullName[name]
		if !ok {
			continue
		}
		out[name] = r.u.d.accounts[id]
	}
	return out, nil
}

func (r accountRepo) SaveAccount(ctx context.Context, account domain.Account) error {
	r.u.d.accounts[account.ID] = account
	r.u.d.byFullName[account.FullName] = account.ID
	return nil
}
