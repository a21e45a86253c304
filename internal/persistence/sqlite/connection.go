package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/example/crane-asset-manager/internal/persistence"
)

// Config holds SQLite-specific database configuration.
type Config struct {
	// DSN is the database file path or ":memory:".
	DSN string

	// BusyTimeout sets how long to wait for database locks.
	BusyTimeout time.Duration

	// EnableForeignKeys enables foreign key constraint checking.
	EnableForeignKeys bool

	// JournalMode sets the SQLite journal mode (WAL, DELETE, MEMORY, ...).
	JournalMode string

	// Synchronous sets the synchronous mode (FULL, NORMAL, OFF).
	Synchronous string

	// CacheSize sets the page cache size (negative for KB).
	CacheSize int

	// MaxOpenConns caps open connections. The migration engine assumes a
	// single writer, so this stays small.
	MaxOpenConns int

	// MaxIdleConns caps idle connections.
	MaxIdleConns int

	// ConnMaxLifetime bounds connection reuse.
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a configuration with sensible defaults for the
// embedded single-writer database.
func DefaultConfig(databasePath string) Config {
	return Config{
		DSN:               databasePath,
		BusyTimeout:       30 * time.Second,
		EnableForeignKeys: true,
		JournalMode:       "WAL",
		Synchronous:       "NORMAL",
		CacheSize:         -64000,
		MaxOpenConns:      5,
		MaxIdleConns:      2,
		ConnMaxLifetime:   time.Hour,
	}
}

// MemoryConfig returns a configuration for an in-memory database, used in
// tests.
func MemoryConfig() Config {
	return Config{
		DSN:               ":memory:",
		BusyTimeout:       5 * time.Second,
		EnableForeignKeys: true,
		JournalMode:       "MEMORY",
		Synchronous:       "OFF",
		CacheSize:         -1000,
		MaxOpenConns:      1,
		MaxIdleConns:      1,
		ConnMaxLifetime:   time.Minute,
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("DSN cannot be empty")
	}
	if c.BusyTimeout < 0 {
		return fmt.Errorf("BusyTimeout cannot be negative")
	}

	validJournalModes := map[string]bool{
		"": true, "DELETE": true, "TRUNCATE": true, "PERSIST": true,
		"MEMORY": true, "WAL": true, "OFF": true,
	}
	if !validJournalModes[c.JournalMode] {
		return fmt.Errorf("invalid journal mode: %s", c.JournalMode)
	}

	validSyncModes := map[string]bool{
		"": true, "OFF": true, "NORMAL": true, "FULL": true, "EXTRA": true,
	}
	if !validSyncModes[c.Synchronous] {
		return fmt.Errorf("invalid synchronous mode: %s", c.Synchronous)
	}

	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 || c.ConnMaxLifetime < 0 {
		return fmt.Errorf("connection pool settings cannot be negative")
	}

	return nil
}

// openDB validates the configuration, ensures the database file exists,
// opens the pool, and applies the PRAGMA settings.
func openDB(cfg Config) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SQLite configuration: %w", err)
	}

	if err := ensureDatabaseFile(cfg.DSN); err != nil {
		return nil, fmt.Errorf("failed to create database file: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := applyPragmas(db, cfg); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return db, nil
}

func applyPragmas(db *sql.DB, cfg Config) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()),
	}
	if cfg.JournalMode != "" {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA journal_mode = %s", cfg.JournalMode))
	}
	if cfg.Synchronous != "" {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA synchronous = %s", cfg.Synchronous))
	}
	if cfg.EnableForeignKeys {
		pragmas = append(pragmas, "PRAGMA foreign_keys = ON")
	}
	if cfg.CacheSize != 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA cache_size = %d", cfg.CacheSize))
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func ensureDatabaseFile(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file::memory:") {
		return nil
	}

	path := strings.TrimPrefix(dsn, "file:")
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create database file %s: %w", path, err)
	}
	return file.Close()
}

// TransactionFunc represents a function that executes within a transaction.
type TransactionFunc func(tx *sql.Tx) error

// withTransaction executes fn inside a transaction, rolling back on error
// or panic and committing otherwise.
func withTransaction(ctx context.Context, db *sql.DB, fn TransactionFunc) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// mapError translates SQLite driver errors to persistence sentinel errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.ErrNotFound
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", persistence.ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", persistence.ErrForeignKeyViolation, err)
	case strings.Contains(msg, "CHECK constraint failed"):
		return fmt.Errorf("%w: %v", persistence.ErrConstraintViolation, err)
	default:
		return err
	}
}
