package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/SscSPs/ledger/internal/logging"
	"github.com/SscSPs/ledger/internal/quantize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Clock abstracts time.Now so postings are reproducible in tests, grounded
// on the spec's explicit "occurred_at = clock.Now()" contract (§4.3 step 6).
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock, backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// postingService implements portssvc.PostingSvc (spec §4.3).
type postingService struct {
	uow        portsrepo.UnitOfWorkFactory
	clock      Clock
	moneyScale int32
	retry      RetryConfig
}

// NewPostingService constructs the posting pipeline use-case. Grounded on
// the teacher's journalService.CreateJournal, generalized from a single
// sign-convention balance check into the spec's base-currency conversion
// and denormalized aggregate maintenance (spec §4.3).
func NewPostingService(uow portsrepo.UnitOfWorkFactory, clock Clock, moneyScale int32, retry RetryConfig) portssvc.PostingSvc {
	if clock == nil {
		clock = SystemClock{}
	}
	return &postingService{uow: uow, clock: clock, moneyScale: moneyScale, retry: retry}
}

func (s *postingService) Post(ctx context.Context, req portssvc.PostTransactionRequest) (*domain.Journal, error) {
	logger := logging.FromContext(ctx)

	// Step 2: normalize each line.
	normalized := make([]domain.EntryLine, len(req.Lines))
	for i, l := range req.Lines {
		l.CurrencyCode = strings.ToUpper(strings.TrimSpace(l.CurrencyCode))
		l.AccountFullName = collapseWhitespace(strings.TrimSpace(l.AccountFullName))
		normalized[i] = l
	}

	idempotencyKey := domain.IdempotencyKeyFromMeta(req.Meta)

	txn, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open unit of work: %v", apperrors.ErrUnexpected, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = txn.Rollback(ctx)
		}
	}()

	// Step 3: idempotency short-circuit.
	if idempotencyKey != "" {
		existing, err := txn.Journals().FindJournalByIdempotencyKey(ctx, idempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if err := txn.Rollback(ctx); err != nil {
				logger.Warn("rollback after idempotent short-circuit failed", slog.String("error", err.Error()))
			}
			committed = true
			logger.Info("idempotent post returned existing journal", slog.String("journal_id", existing.ID), slog.String("idempotency_key", idempotencyKey))
			return existing, nil
		}
	}

	// Step 4: load referenced currencies and accounts in bulk.
	currencyCodes := uniqueNonEmpty(mapSlice(normalized, func(l domain.EntryLine) string { return l.CurrencyCode }))
	accountNames := uniqueNonEmpty(mapSlice(normalized, func(l domain.EntryLine) string { return l.AccountFullName }))

	currencies := make(map[string]domain.Currency, len(currencyCodes))
	for _, code := range currencyCodes {
		c, err := txn.Currencies().FindCurrencyByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if c != nil {
			currencies[code] = *c
		}
	}
	accounts, err := txn.Accounts().FindAccountsByFullNames(ctx, accountNames)
	if err != nil {
		return nil, err
	}

	// Step 5: validate.
	if err := ValidateLines(normalized, currencies, accounts, s.moneyScale); err != nil {
		return nil, err
	}

	// Step 6: generate id and timestamp.
	journalID, err := newJournalID()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate journal id: %v", apperrors.ErrUnexpected, err)
	}
	occurredAt := s.clock.Now().UTC()

	lines := make([]domain.TransactionLine, len(normalized))
	for i, l := range normalized {
		acc := accounts[l.AccountFullName]
		lines[i] = domain.TransactionLine{
			ID:           uuid.NewString(),
			JournalID:    journalID,
			AccountID:    acc.ID,
			Side:         l.Side,
			Amount:       l.Amount,
			CurrencyCode: l.CurrencyCode,
			ExchangeRate: l.ExchangeRate,
		}
	}

	journal := domain.Journal{
		ID:             journalID,
		OccurredAt:     occurredAt,
		Memo:           req.Memo,
		Meta:           req.Meta,
		IdempotencyKey: idempotencyKey,
		Lines:          lines,
	}

	// Step 7: insert journal + lines.
	if err := txn.Journals().SaveJournal(ctx, journal); err != nil {
		return nil, err
	}

	// Step 8: per-account balance deltas, in the account's own currency.
	balanceDeltas := make(map[string]decimal.Decimal)
	for _, l := range lines {
		delta := l.Amount
		if l.Side == domain.Credit {
			delta = delta.Neg()
		}
		balanceDeltas[l.AccountID] = balanceDeltas[l.AccountID].Add(delta)
	}
	for accountID, delta := range balanceDeltas {
		if delta.IsZero() {
			continue
		}
		if err := txn.Aggregates().UpsertAccountBalance(ctx, accountID, quantize.Money(delta, s.moneyScale)); err != nil {
			return nil, err
		}
	}

	// Step 9: per (account, day) turnover accumulation.
	type turnoverKey struct {
		accountID string
		day       time.Time
	}
	turnovers := make(map[turnoverKey][2]decimal.Decimal) // [debit, credit]
	day := domain.TruncateToUTCDay(occurredAt)
	for _, l := range lines {
		k := turnoverKey{accountID: l.AccountID, day: day}
		cur := turnovers[k]
		if l.Side == domain.Debit {
			cur[0] = cur[0].Add(l.Amount)
		} else {
			cur[1] = cur[1].Add(l.Amount)
		}
		turnovers[k] = cur
	}
	for k, v := range turnovers {
		if err := txn.Aggregates().UpsertAccountDailyTurnover(ctx, k.accountID, k.day, quantize.Money(v[0], s.moneyScale), quantize.Money(v[1], s.moneyScale)); err != nil {
			return nil, err
		}
	}

	// Step 10: commit, with retry.
	if err := commitWithRetry(ctx, s.retry, txn.Commit); err != nil {
		return nil, err
	}
	committed = true

	logger.Info("journal posted", slog.String("journal_id", journalID), slog.Int("line_count", len(lines)))
	return &journal, nil
}

func newJournalID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "tx:" + hex.EncodeToString(buf), nil
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func uniqueNonEmpty(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}
