package services

import (
	"context"
	"testing"

	"github.com/SscSPs/ledger/internal/adapters/database/memory"
	"github.com/SscSPs/ledger/internal/core/domain"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParityService_ReportsDeviationFromBase(t *testing.T) {
	store := newTestStore() // USD base, EUR at 1.10
	uow := memory.NewUnitOfWorkFactory(store)
	svc := NewParityService(uow)

	report, err := svc.Parity(context.Background(), portssvc.ParityRequest{IncludeDev: true})
	require.NoError(t, err)
	require.Len(t, report.Lines, 2)
	assert.True(t, report.HasDeviation)

	var eur domain.ParityLine
	for _, l := range report.Lines {
		if l.CurrencyCode == "EUR" {
			eur = l
		}
	}
	require.NotNil(t, eur.Deviation)
	assert.True(t, eur.Deviation.Equal(eur.Deviation)) // sanity: non-nil and comparable
}

func TestParityService_BaseOnlyFilter(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	svc := NewParityService(uow)

	report, err := svc.Parity(context.Background(), portssvc.ParityRequest{BaseOnly: true})
	require.NoError(t, err)
	require.Len(t, report.Lines, 1)
	assert.Equal(t, "USD", report.Lines[0].CurrencyCode)
	assert.True(t, report.Lines[0].IsBase)
}

func TestParityService_CodesFilter(t *testing.T) {
	store := newTestStore()
	uow := memory.NewUnitOfWorkFactory(store)
	svc := NewParityService(uow)

	report, err := svc.Parity(context.Background(), portssvc.ParityRequest{Codes: []string{"EUR"}})
	require.NoError(t, err)
	require.Len(t, report.Lines, 1)
	assert.Equal(t, "EUR", report.Lines[0].CurrencyCode)
}
