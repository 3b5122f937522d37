// Package pgsql provides the pgx-backed repository and Unit-of-Work adapters,
// grounded on the teacher's internal/repositories/database/pgsql package
// (BaseRepository, Pool/tx indirection, pgconn error mapping).
package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is satisfied by both *pgxpool.Pool and pgx.Tx.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository carries the tx (or pool, when outside a Unit-of-Work) that
// every sub-repository issues its statements against.
type BaseRepository struct {
	db DB
}

func (r BaseRepository) DB() DB { return r.db }

// Postgres SQLSTATE codes classifyErr recognizes. All but the unique
// violation are treated as transient (spec §5): serialization failure,
// deadlock, and lost or shut-down connections.
const (
	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
	sqlstateUniqueViolation      = "23505"
	sqlstateConnectionException  = "08000"
	sqlstateConnectionFailure    = "08006"
	sqlstateAdminShutdown        = "57P01"
)

// classifyErr maps a raw pgx/pgconn error onto the apperrors taxonomy (spec
// §7). Unrecognized errors are wrapped as ErrUnexpected.
func classifyErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlstateSerializationFailure, sqlstateDeadlockDetected,
			sqlstateConnectionException, sqlstateConnectionFailure, sqlstateAdminShutdown:
			return errors.Join(apperrors.ErrTransient, err)
		case sqlstateUniqueViolation:
			return errors.Join(apperrors.ErrDomain, err)
		}
	}
	return errors.Join(apperrors.ErrUnexpected, err)
}

// isNotFound reports whether an error returned by classifyErr represents a
// missing row, for the common "return (nil, nil) on absence" repository
// convention.
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
