package services

import (
	"errors"
	"testing"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseUSD() domain.Currency {
	return domain.Currency{Code: "USD", IsBase: true}
}

func nonBaseRate(code string, rate string) domain.Currency {
	r := decimal.RequireFromString(rate)
	return domain.Currency{Code: code, ExchangeRate: &r}
}

func acct(fullName, ccy string) domain.Account {
	return domain.Account{ID: fullName, FullName: fullName, CurrencyCode: ccy}
}

func TestValidateLines_EmptySet(t *testing.T) {
	err := ValidateLines(nil, nil, nil, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateLines_SingleCurrencyBalances(t *testing.T) {
	currencies := map[string]domain.Currency{"USD": baseUSD()}
	accounts := map[string]domain.Account{
		"Assets:Cash":   acct("Assets:Cash", "USD"),
		"Income:Sales":  acct("Income:Sales", "USD"),
	}
	lines := []domain.EntryLine{
		{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
		{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
	}
	require.NoError(t, ValidateLines(lines, currencies, accounts, 2))
}

func TestValidateLines_UnbalancedRejected(t *testing.T) {
	currencies := map[string]domain.Currency{"USD": baseUSD()}
	accounts := map[string]domain.Account{
		"Assets:Cash":  acct("Assets:Cash", "USD"),
		"Income:Sales": acct("Income:Sales", "USD"),
	}
	lines := []domain.EntryLine{
		{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "USD"},
		{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("99.00"), CurrencyCode: "USD"},
	}
	err := ValidateLines(lines, currencies, accounts, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDomain)
}

func TestValidateLines_MultiCurrencyConvertsToBase(t *testing.T) {
	currencies := map[string]domain.Currency{
		"USD": baseUSD(),
		"EUR": nonBaseRate("EUR", "1.10"),
	}
	accounts := map[string]domain.Account{
		"Assets:Cash:EUR": acct("Assets:Cash:EUR", "EUR"),
		"Income:Sales":    acct("Income:Sales", "USD"),
	}
	lines := []domain.EntryLine{
		{Side: domain.Debit, AccountFullName: "Assets:Cash:EUR", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "EUR"},
		{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("110.00"), CurrencyCode: "USD"},
	}
	require.NoError(t, ValidateLines(lines, currencies, accounts, 2))
}

func TestValidateLines_LineLevelOverrideRate(t *testing.T) {
	currencies := map[string]domain.Currency{
		"USD": baseUSD(),
		"EUR": nonBaseRate("EUR", "1.10"),
	}
	accounts := map[string]domain.Account{
		"Assets:Cash:EUR": acct("Assets:Cash:EUR", "EUR"),
		"Income:Sales":    acct("Income:Sales", "USD"),
	}
	overrideRate := decimal.RequireFromString("1.20")
	lines := []domain.EntryLine{
		{Side: domain.Debit, AccountFullName: "Assets:Cash:EUR", Amount: decimal.RequireFromString("100.00"), CurrencyCode: "EUR", ExchangeRate: &overrideRate},
		{Side: domain.Credit, AccountFullName: "Income:Sales", Amount: decimal.RequireFromString("120.00"), CurrencyCode: "USD"},
	}
	require.NoError(t, ValidateLines(lines, currencies, accounts, 2))
}

func TestValidateLines_UnknownAccountNotFound(t *testing.T) {
	currencies := map[string]domain.Currency{"USD": baseUSD()}
	accounts := map[string]domain.Account{}
	lines := []domain.EntryLine{
		{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("1.00"), CurrencyCode: "USD"},
	}
	err := ValidateLines(lines, currencies, accounts, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestValidateLines_UnknownCurrencyNotFound(t *testing.T) {
	currencies := map[string]domain.Currency{}
	accounts := map[string]domain.Account{"Assets:Cash": acct("Assets:Cash", "XYZ")}
	lines := []domain.EntryLine{
		{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("1.00"), CurrencyCode: "XYZ"},
	}
	err := ValidateLines(lines, currencies, accounts, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestValidateLines_NonPositiveAmountRejected(t *testing.T) {
	currencies := map[string]domain.Currency{"USD": baseUSD()}
	accounts := map[string]domain.Account{"Assets:Cash": acct("Assets:Cash", "USD")}
	lines := []domain.EntryLine{
		{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.Zero, CurrencyCode: "USD"},
	}
	err := ValidateLines(lines, currencies, accounts, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestValidateLines_NoBaseCurrencyRejectedWhenNeeded(t *testing.T) {
	currencies := map[string]domain.Currency{"EUR": nonBaseRate("EUR", "1.10")}
	accounts := map[string]domain.Account{"Assets:Cash": acct("Assets:Cash", "EUR")}
	lines := []domain.EntryLine{
		{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("1.00"), CurrencyCode: "EUR"},
	}
	err := ValidateLines(lines, currencies, accounts, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateLines_NonBaseCurrencyMissingRateRejected(t *testing.T) {
	currencies := map[string]domain.Currency{
		"USD": baseUSD(),
		"EUR": {Code: "EUR"}, // no rate set
	}
	accounts := map[string]domain.Account{"Assets:Cash": acct("Assets:Cash", "EUR")}
	lines := []domain.EntryLine{
		{Side: domain.Debit, AccountFullName: "Assets:Cash", Amount: decimal.RequireFromString("1.00"), CurrencyCode: "EUR"},
	}
	err := ValidateLines(lines, currencies, accounts, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
