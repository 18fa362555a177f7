package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MemoryPath opens a private in-memory database. Used by tests and the admin CLI.
const MemoryPath = ":memory:"

// Open opens a connection pool to the SQLite database at dbPath.
//
// Pragmas are passed in the DSN so that every pooled connection enforces
// foreign keys; setting them with a single Exec only affects one connection
// and silently disables ON DELETE CASCADE on the others.
func Open(dbPath string) (*sql.DB, error) {
	if dbPath != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", buildDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to :memory: is a separate database.
	if dbPath == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// buildDSN appends the connection pragmas to the database path.
func buildDSN(dbPath string) string {
	pragmas := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
	}
	if dbPath == MemoryPath {
		pragmas = append(pragmas, "_pragma=journal_mode(MEMORY)")
	} else {
		// IMMEDIATE makes concurrent writers wait on busy_timeout instead of
		// failing when a deferred read lock cannot be upgraded.
		pragmas = append(pragmas, "_pragma=journal_mode(WAL)", "_pragma=synchronous(NORMAL)", "_txlock=immediate")
	}
	return dbPath + "?" + strings.Join(pragmas, "&")
}

// newProvider builds a goose provider over the embedded migrations.
func newProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies all pending migrations and returns how many were applied.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	provider, err := newProvider(db)
	if err != nil {
		return 0, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("failed to apply migrations: %w", err)
	}
	return len(results), nil
}

// SchemaStatus reports the applied schema version and the newest embedded migration version.
type SchemaStatus struct {
	Current int64
	Latest  int64
}

// Pending reports whether embedded migrations are newer than the database.
func (s SchemaStatus) Pending() bool {
	return s.Current < s.Latest
}

// Status returns the applied and latest schema versions.
func Status(ctx context.Context, db *sql.DB) (SchemaStatus, error) {
	provider, err := newProvider(db)
	if err != nil {
		return SchemaStatus{}, err
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return SchemaStatus{}, fmt.Errorf("failed to get schema version: %w", err)
	}

	var latest int64
	for _, source := range provider.ListSources() {
		if source.Version > latest {
			latest = source.Version
		}
	}

	return SchemaStatus{Current: current, Latest: latest}, nil
}

// HealthCheck performs a simple health check on the database
func HealthCheck(ctx context.Context, db *sql.DB) error {
	return db.PingContext(ctx)
}

// WithTransaction runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back when it returns an error or
// panics. Errors from fn are returned unchanged so callers can match them.
func WithTransaction(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			err = fmt.Errorf("panic in transaction: %v", p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
