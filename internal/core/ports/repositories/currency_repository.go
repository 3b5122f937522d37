// Package repositories defines the repository ports the ledger core commits
// its work through. Implementations are concrete adapters (pgx-backed,
// in-memory) registered by the integrator; nominal interfaces suffice, no
// structural subtyping is required. Grounded on the teacher's
// internal/core/ports/repositories package.
package repositories

import "context"

import "github.com/SscSPs/ledger/internal/core/domain"

// CurrencyRepository is the read/write port for currencies.
type CurrencyRepository interface {
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}
