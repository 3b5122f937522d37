package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
	"github.com/SscSPs/ledger/internal/quantize"
	"github.com/shopspring/decimal"
)

// currencyCodePattern matches spec §4.2 step 2: [A-Z]{3,10} after
// upper-casing.
var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3,10}$`)

// ValidateLines runs the ledger validator (spec §4.2) against an ordered,
// non-empty set of entry lines, the known currencies (keyed by code) and
// known accounts (keyed by full name). Checks run in the order the spec
// lists them; the first failure stops the scan. Grounded on the teacher's
// journalService.validateJournalBalance / internal/utils/accounting, which
// performed an analogous (but sign-convention based, single-currency)
// balance check; this generalizes it to multi-currency base conversion.
func ValidateLines(lines []domain.EntryLine, currencies map[string]domain.Currency, accounts map[string]domain.Account, moneyScale int32) error {
	// 1. Line set non-empty.
	if len(lines) == 0 {
		return fmt.Errorf("%w: line set must not be empty", apperrors.ErrValidation)
	}

	// 2. Per-line format checks.
	normalizedCurrency := make([]string, len(lines))
	normalizedAccount := make([]string, len(lines))
	for i, l := range lines {
		if l.Side != domain.Debit && l.Side != domain.Credit {
			return fmt.Errorf("%w: line %d has invalid side %q", apperrors.ErrValidation, i, l.Side)
		}
		if !l.Amount.IsPositive() {
			return fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, i)
		}
		code := strings.ToUpper(l.CurrencyCode)
		if !currencyCodePattern.MatchString(code) {
			return fmt.Errorf("%w: line %d currency code %q is malformed", apperrors.ErrValidation, i, l.CurrencyCode)
		}
		normalizedCurrency[i] = code

		name := strings.TrimSpace(l.AccountFullName)
		if _, ok := accounts[name]; !ok {
			return fmt.Errorf("%w: account %q not found", apperrors.ErrNotFound, name)
		}
		normalizedAccount[i] = name
	}

	// 3. Base currency defined, if any non-base currency appears.
	var base *domain.Currency
	for _, c := range currencies {
		if c.IsBase {
			b := c
			base = &b
			break
		}
	}
	needsBase := false
	for _, code := range normalizedCurrency {
		if c, ok := currencies[code]; ok && !c.IsBase {
			needsBase = true
			break
		}
	}
	if needsBase && base == nil {
		return fmt.Errorf("%w: no base currency defined", apperrors.ErrValidation)
	}

	// 4. Every referenced currency exists.
	for _, code := range normalizedCurrency {
		if _, ok := currencies[code]; !ok {
			return fmt.Errorf("%w: currency %q not found", apperrors.ErrNotFound, code)
		}
	}

	// 5 & 6. Effective rate resolution and balance check.
	debitBase := decimal.Zero
	creditBase := decimal.Zero
	for i, l := range lines {
		code := normalizedCurrency[i]
		cur := currencies[code]

		var rate decimal.Decimal
		switch {
		case cur.IsBase:
			rate = decimal.NewFromInt(1)
		case l.ExchangeRate != nil:
			if !l.ExchangeRate.IsPositive() {
				return fmt.Errorf("%w: line %d exchange rate must be positive", apperrors.ErrValidation, i)
			}
			rate = *l.ExchangeRate
		default:
			eff, ok := cur.EffectiveRate()
			if !ok {
				return fmt.Errorf("%w: currency %q has no positive rate", apperrors.ErrValidation, code)
			}
			rate = eff
		}

		baseAmount := quantize.Money(l.Amount.Mul(rate), moneyScale)
		if l.Side == domain.Debit {
			debitBase = debitBase.Add(baseAmount)
		} else {
			creditBase = creditBase.Add(baseAmount)
		}
	}

	signedSum := quantize.Money(debitBase.Sub(creditBase), moneyScale)
	if !signedSum.IsZero() {
		return fmt.Errorf("%w: lines do not balance in base currency (debit=%s credit=%s diff=%s)",
			apperrors.ErrDomain, debitBase.String(), creditBase.String(), signedSum.String())
	}

	return nil
}
