package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger/internal/core/ports/services"
	"github.com/SscSPs/ledger/internal/logging"
	"golang.org/x/sync/errgroup"
)

// ttlSafetyCap bounds how many candidate ids a single Plan call will ever
// collect, per spec §4.8 step 2.
const ttlSafetyCap = 100000

// fxAuditTTLService implements portssvc.FXAuditTTLSvc (spec §4.8, §4.9).
// Grounded on the teacher's design notes: the teacher repo has no TTL
// concept at all (its exchange rates are point-in-time facts, never
// expired), so this component is new, but its batch-sequencing follows the
// teacher's pattern of processing one transactional step per unit of work
// (journal_repository.go's SaveJournal being one such step).
type fxAuditTTLService struct {
	uow   portsrepo.UnitOfWorkFactory
	clock Clock
}

// NewFXAuditTTLService constructs the FX-audit TTL planner/executor use-case.
func NewFXAuditTTLService(uow portsrepo.UnitOfWorkFactory, clock Clock) portssvc.FXAuditTTLSvc {
	if clock == nil {
		clock = SystemClock{}
	}
	return &fxAuditTTLService{uow: uow, clock: clock}
}

func (s *fxAuditTTLService) Plan(ctx context.Context, req portssvc.TTLPlanRequest) (*domain.TTLPlan, error) {
	if req.RetentionDays < 0 {
		return nil, fmt.Errorf("%w: retention_days must be >= 0", apperrors.ErrValidation)
	}
	if req.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: batch_size must be > 0", apperrors.ErrValidation)
	}
	mode, ok := domain.NormalizeTTLMode(req.Mode)
	if !ok {
		return nil, fmt.Errorf("%w: mode must be one of none/delete/archive, got %q", apperrors.ErrValidation, req.Mode)
	}
	limit := ttlSafetyCap
	if req.Limit != nil {
		if *req.Limit < 0 {
			return nil, fmt.Errorf("%w: limit must be >= 0", apperrors.ErrValidation)
		}
		if *req.Limit < limit {
			limit = *req.Limit
		}
	}

	cutoff := s.clock.Now().UTC().AddDate(0, 0, -req.RetentionDays)

	txn, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open unit of work: %v", apperrors.ErrUnexpected, err)
	}
	defer func() { _ = txn.Rollback(ctx) }()

	ids, err := txn.ExchangeRateEvents().ListOldEventIDs(ctx, cutoff, limit)
	if err != nil {
		return nil, err
	}

	batches := make([]domain.BatchWindow, 0, (len(ids)+req.BatchSize-1)/req.BatchSize)
	for offset := 0; offset < len(ids); offset += req.BatchSize {
		size := req.BatchSize
		if offset+size > len(ids) {
			size = len(ids) - offset
		}
		batches = append(batches, domain.BatchWindow{Offset: offset, Size: size})
	}

	return &domain.TTLPlan{
		Cutoff:      cutoff,
		Mode:        mode,
		DryRun:      req.DryRun,
		TotalOld:    len(ids),
		Batches:     batches,
		OldEventIDs: ids,
	}, nil
}

func (s *fxAuditTTLService) Execute(ctx context.Context, plan domain.TTLPlan) (*domain.TTLResult, error) {
	logger := logging.FromContext(ctx)

	if _, ok := domain.NormalizeTTLMode(string(plan.Mode)); !ok {
		return nil, fmt.Errorf("%w: invalid plan mode %q", apperrors.ErrValidation, plan.Mode)
	}
	if len(plan.OldEventIDs) == 0 && (plan.Mode == domain.TTLModeDelete || plan.Mode == domain.TTLModeArchive) {
		return nil, fmt.Errorf("%w: empty id list inconsistent with mode %q", apperrors.ErrValidation, plan.Mode)
	}
	covered := 0
	for _, b := range plan.Batches {
		if b.Size <= 0 {
			return nil, fmt.Errorf("%w: batch window has non-positive size", apperrors.ErrValidation)
		}
		if b.Offset != covered {
			return nil, fmt.Errorf("%w: batch windows must cover the id list contiguously with no gaps", apperrors.ErrValidation)
		}
		covered += b.Size
	}
	if covered != len(plan.OldEventIDs) {
		return nil, fmt.Errorf("%w: union of batch windows (%d) must exactly cover the id list (%d)", apperrors.ErrValidation, covered, len(plan.OldEventIDs))
	}

	result := &domain.TTLResult{Mode: plan.Mode}
	if plan.DryRun || plan.Mode == domain.TTLModeNone {
		logger.Info("fx-audit ttl execute: dry run or none mode, no side effects", slog.String("mode", string(plan.Mode)), slog.Bool("dry_run", plan.DryRun))
		return result, nil
	}

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

	// Batches are processed sequentially; errgroup.Group with the default
	// (unset) SetLimit runs goroutines unbounded, so pin concurrency to 1
	// with SetLimit to preserve the sequential ordering contract (spec
	// §4.9: "Batches are processed sequentially").
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(1)

	now := s.clock.Now().UTC()
	for _, batch := range plan.Batches {
		batch := batch
		ids := plan.OldEventIDs[batch.Offset : batch.Offset+batch.Size]
		g.Go(func() error {
			switch plan.Mode {
			case domain.TTLModeDelete:
				if err := txn.ExchangeRateEvents().DeleteEvents(gctx, ids); err != nil {
					return err
				}
				result.DeletedCount += len(ids)
			case domain.TTLModeArchive:
				if err := txn.ExchangeRateEvents().ArchiveEvents(gctx, ids, now); err != nil {
					return err
				}
				result.ArchivedCount += len(ids)
				result.DeletedCount += len(ids)
			}
			result.BatchesExecuted++
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := commitWithRetry(ctx, DefaultRetryConfig, txn.Commit); err != nil {
		return nil, err
	}
	committed = true

	logger.Info("fx-audit ttl executed", slog.String("mode", string(plan.Mode)), slog.Int("batches", result.BatchesExecuted), slog.Int("deleted", result.DeletedCount), slog.Int("archived", result.ArchivedCount))
	return result, nil
}
