package pgsql

import (
	"errors"
	"testing"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyErr_NoRowsIsNotFound(t *testing.T) {
	got := classifyErr(pgx.ErrNoRows)
	assert.True(t, isNotFound(got))
}

func TestClassifyErr_SerializationFailureIsTransient(t *testing.T) {
	err := classifyErr(&pgconn.PgError{Code: sqlstateSerializationFailure})
	assert.True(t, errors.Is(err, apperrors.ErrTransient))
}

func TestClassifyErr_DeadlockIsTransient(t *testing.T) {
	err := classifyErr(&pgconn.PgError{Code: sqlstateDeadlockDetected})
	assert.True(t, errors.Is(err, apperrors.ErrTransient))
}

func TestClassifyErr_ConnectionFailureIsTransient(t *testing.T) {
	err := classifyErr(&pgconn.PgError{Code: sqlstateConnectionFailure})
	assert.True(t, errors.Is(err, apperrors.ErrTransient))
}

func TestClassifyErr_UniqueViolationIsDomain(t *testing.T) {
	err := classifyErr(&pgconn.PgError{Code: sqlstateUniqueViolation})
	assert.True(t, errors.Is(err, apperrors.ErrDomain))
}

func TestClassifyErr_UnknownCodeIsUnexpected(t *testing.T) {
	err := classifyErr(&pgconn.PgError{Code: "99999"})
	assert.True(t, errors.Is(err, apperrors.ErrUnexpected))
}

func TestClassifyErr_NilIsNil(t *testing.T) {
	assert.NoError(t, classifyErr(nil))
}
