// Package migrations applies the ledger's versioned schema against a sync
// database connection, grounded on the teacher's runDatabaseMigrations
// (cmd/mma_backend/main.go) which drives golang-migrate against a temporary
// database/sql handle opened with the pgx stdlib adapter. Generalized here to
// also target SQLite (mattn/go-sqlite3), per spec §4.10's two-engine
// migration runner contract, and to read schema changes from an embedded
// filesystem rather than a migrations/ directory on disk, since this is a
// library rather than a deployed binary.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/SscSPs/ledger/internal/apperrors"
	"github.com/SscSPs/ledger/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql/postgres/*.sql sql/sqlite3/*.sql
var migrationFiles embed.FS

const migrationsTable = "schema_version"

// Runner applies and inspects the ledger's schema against one sync
// connection. It is intentionally short-lived: callers construct one per
// migration operation and Close it afterward (spec §5, "the sync migration
// engine is short-lived and does not pool").
type Runner struct {
	m   *migrate.Migrate
	src source.Driver
	db  *sql.DB
}

// NewRunner opens a sync connection to databaseURL and wires a migrate
// instance over the embedded schema for the URL's engine. databaseURL must
// not carry an async driver token (spec §6).
func NewRunner(databaseURL string) (*Runner, error) {
	if err := config.ValidateSyncURL(databaseURL); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	engine, dsn, err := dialFor(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	db, err := sql.Open(engine.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s connection: %v", apperrors.ErrUnexpected, engine.driverName, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: pinging %s connection: %v", apperrors.ErrUnexpected, engine.driverName, err)
	}

	dbDriver, err := engine.newDatabaseDriver(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
	}

	sub, err := fs.Sub(migrationFiles, "sql/"+engine.schemaDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
	}
	src, err := iofs.New(sub, ".")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, engine.schemaDir, dbDriver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
	}
	return &Runner{m: m, src: src, db: db}, nil
}

// Close releases the underlying connection.
func (r *Runner) Close() error {
	sourceErr, dbErr := r.m.Close()
	closeErr := r.db.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}
	return closeErr
}

// UpgradeToHead applies every pending migration in sequence. Idempotent: a
// fully up-to-date schema returns nil.
func (r *Runner) UpgradeToHead() error {
	err := r.m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
	}
	return nil
}

// UpgradeTo migrates forward or backward to exactly version.
func (r *Runner) UpgradeTo(version uint) error {
	err := r.m.Migrate(version)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
	}
	return nil
}

// Downgrade reverts exactly steps migrations (steps must be positive).
func (r *Runner) Downgrade(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", apperrors.ErrValidation, steps)
	}
	err := r.m.Steps(-steps)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
	}
	return nil
}

// DowngradeTo reverts to exactly version, the target-version form of
// Downgrade (spec §4.10, "Downgrade(steps|target)").
func (r *Runner) DowngradeTo(version uint) error {
	return r.UpgradeTo(version)
}

// CurrentVersion returns the applied version and whether the database's
// migration history is dirty (a prior migration failed partway through).
// version is 0 and dirty is false when no migration has ever been applied.
func (r *Runner) CurrentVersion() (version uint, dirty bool, err error) {
	version, dirty, err = r.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
	}
	return version, dirty, nil
}

// PendingMigrations returns the versions that have not yet been applied, in
// ascending order.
func (r *Runner) PendingMigrations() ([]uint, error) {
	_, _, rawErr := r.m.Version()

	pending := make([]uint, 0)
	var next uint
	switch {
	case errors.Is(rawErr, migrate.ErrNilVersion):
		first, err := r.src.First()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return pending, nil
			}
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
		}
		pending = append(pending, first)
		next = first
	case rawErr != nil:
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnexpected, rawErr)
	default:
		current, _, _ := r.m.Version()
		next = current
	}

	for {
		v, err := r.src.Next(next)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				break
			}
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUnexpected, err)
		}
		pending = append(pending, v)
		next = v
	}
	return pending, nil
}

// ValidateVersion fails with ErrVersionMismatch when the schema's current
// version does not equal expected.
func (r *Runner) ValidateVersion(expected uint) error {
	current, dirty, err := r.CurrentVersion()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("%w: schema is dirty at version %d", apperrors.ErrVersionMismatch, current)
	}
	if current != expected {
		return fmt.Errorf("%w: current version %d, expected %d", apperrors.ErrVersionMismatch, current, expected)
	}
	return nil
}

type engineBinding struct {
	driverName        string
	schemaDir         string
	newDatabaseDriver func(db *sql.DB) (database.Driver, error)
}

func dialFor(databaseURL string) (engineBinding, string, error) {
	idx := strings.Index(databaseURL, "://")
	if idx < 0 {
		return engineBinding{}, "", fmt.Errorf("malformed database URL: %s", databaseURL)
	}
	scheme, rest := databaseURL[:idx], databaseURL[idx+3:]
	base := scheme
	if i := strings.Index(base, "+"); i >= 0 {
		base = base[:i]
	}

	switch base {
	case "postgres", "postgresql":
		return engineBinding{
			driverName: "pgx",
			schemaDir:  "postgres",
			newDatabaseDriver: func(db *sql.DB) (database.Driver, error) {
				return postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
			},
		}, "postgres://" + rest, nil
	case "sqlite":
		return engineBinding{
			driverName: "sqlite3",
			schemaDir:  "sqlite3",
			newDatabaseDriver: func(db *sql.DB) (database.Driver, error) {
				return sqlite3.WithInstance(db, &sqlite3.Config{MigrationsTable: migrationsTable})
			},
		}, rest, nil
	default:
		return engineBinding{}, "", fmt.Errorf("unsupported database engine %q", base)
	}
}
