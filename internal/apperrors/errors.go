// Package apperrors defines the error taxonomy shared across the ledger core.
package apperrors

import "errors"

// Sentinel errors. Callers should wrap one of these with fmt.Errorf("%w: ...", ...)
// and inspect them with errors.Is.
var (
	// ErrValidation covers bad input format, empty line sets, bad sides,
	// non-positive amounts, bad currency codes, invalid ordering, and
	// invalid TTL arguments.
	ErrValidation = errors.New("validation error")

	// ErrDomain covers unbalanced ledgers after base conversion and more
	// than one base currency.
	ErrDomain = errors.New("domain error")

	// ErrNotFound covers unknown currencies and accounts.
	ErrNotFound = errors.New("resource not found")

	// ErrVersionMismatch is raised by the migration validator when the
	// current schema version does not match the expected version.
	ErrVersionMismatch = errors.New("schema version mismatch")

	// ErrTransient covers serialization failures, deadlocks, and invalidated
	// connections. Callers may retry commits that fail with this error.
	ErrTransient = errors.New("transient database error")

	// ErrUnexpected is the catch-all for anything else. It is returned to
	// the caller; the core does not log it.
	ErrUnexpected = errors.New("unexpected error")
)
