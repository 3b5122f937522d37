package repositories

import "context"

import "github.com/SscSPs/ledger/internal/core/domain"

// AccountRepository is the read/write port for accounts.
type AccountRepository interface {
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByFullName(ctx context.Context, fullName string) (*domain.Account, error)
	FindAccountsByFullNames(ctx context.Context, fullNames []string) (map[string]domain.Account, error)
	SaveAccount(ctx context.Context, account domain.Account) error
}
