package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// SQLExecutor implements Executor over a database/sql handle. One
// connection pool is shared for the whole batch; each migration runs in its
// own transaction.
type SQLExecutor struct {
	db *sql.DB
}

// NewSQLExecutor creates an executor bound to the given database handle.
func NewSQLExecutor(db *sql.DB) *SQLExecutor {
	return &SQLExecutor{db: db}
}

const createLedgerSQL = `
	CREATE TABLE IF NOT EXISTS migration_history (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		checksum TEXT NOT NULL,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		execution_time_ms INTEGER NOT NULL DEFAULT 0
	)
`

const createLedgerIndexSQL = `
	CREATE INDEX IF NOT EXISTS idx_migration_history_applied_at
	ON migration_history(applied_at)
`

// EnsureLedger creates the migration_history table and its index if they do
// not exist. Safe to call repeatedly.
func (e *SQLExecutor) EnsureLedger(ctx context.Context) error {
	if _, err := e.db.ExecContext(ctx, createLedgerSQL); err != nil {
		return NewExecutionError(0, "create migration_history table", "", err)
	}
	if _, err := e.db.ExecContext(ctx, createLedgerIndexSQL); err != nil {
		return NewExecutionError(0, "create migration_history index", "", err)
	}
	return nil
}

// AppliedVersions returns every version recorded in the ledger, ascending.
func (e *SQLExecutor) AppliedVersions(ctx context.Context) ([]int, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT version FROM migration_history ORDER BY version`)
	if err != nil {
		return nil, NewExecutionError(0, "query applied versions", "", err)
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, NewExecutionError(0, "scan applied version", "", err)
		}
		versions = append(versions, version)
	}
	if err := rows.Err(); err != nil {
		return nil, NewExecutionError(0, "iterate applied versions", "", err)
	}

	return versions, nil
}

// Apply runs the migration's forward statements and records it in the
// ledger within a single transaction. A crash at any point leaves either
// the full change recorded or none of it.
func (e *SQLExecutor) Apply(ctx context.Context, m Migration) error {
	statements := splitStatements(m.UpSQL)
	if len(statements) == 0 {
		return NewExecutionError(m.Version, "parse SQL", "", fmt.Errorf("no statements in migration body"))
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return NewExecutionError(m.Version, "begin transaction", "", err)
	}

	started := time.Now()
	for i, stmt := range statements {
		logrus.WithFields(logrus.Fields{
			"version":   m.Version,
			"statement": i + 1,
			"of":        len(statements),
		}).Debug("Executing migration statement")

		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			rollback(tx, m.Version)
			return NewExecutionError(m.Version, fmt.Sprintf("execute statement %d", i+1), stmt, execErr)
		}
	}
	elapsed := time.Since(started)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO migration_history (version, name, description, checksum, applied_at, execution_time_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Version, m.Name, m.Description, m.Checksum,
		time.Now().UTC().Format(time.RFC3339), elapsed.Milliseconds(),
	)
	if err != nil {
		rollback(tx, m.Version)
		return NewExecutionError(m.Version, "record in ledger", "", err)
	}

	if err := tx.Commit(); err != nil {
		return NewExecutionError(m.Version, "commit", "", err)
	}

	return nil
}

// Revert runs the migration's reverse statements and removes its ledger row
// within a single transaction. Callers must skip migrations with empty
// DownSQL; Revert treats an empty body as an error.
func (e *SQLExecutor) Revert(ctx context.Context, m Migration) error {
	statements := splitStatements(m.DownSQL)
	if len(statements) == 0 {
		return NewExecutionError(m.Version, "parse rollback SQL", "", fmt.Errorf("no statements in rollback body"))
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return NewExecutionError(m.Version, "begin rollback transaction", "", err)
	}

	for i, stmt := range statements {
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			rollback(tx, m.Version)
			return NewExecutionError(m.Version, fmt.Sprintf("execute rollback statement %d", i+1), stmt, execErr)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM migration_history WHERE version = ?`, m.Version); err != nil {
		rollback(tx, m.Version)
		return NewExecutionError(m.Version, "remove from ledger", "", err)
	}

	if err := tx.Commit(); err != nil {
		return NewExecutionError(m.Version, "commit rollback", "", err)
	}

	return nil
}

func rollback(tx *sql.Tx, version int) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		logrus.WithField("version", version).WithError(err).Warn("Failed to roll back migration transaction")
	}
}

// splitStatements splits a migration body on semicolons and drops blank and
// comment-only segments. This is a naive boundary detector: semicolons
// inside string literals or procedural blocks are not handled, so migration
// bodies must avoid them.
func splitStatements(body string) []string {
	segments := strings.Split(body, ";")
	statements := make([]string, 0, len(segments))

	for _, segment := range segments {
		lines := strings.Split(segment, "\n")
		kept := make([]string, 0, len(lines))
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			kept = append(kept, trimmed)
		}
		if len(kept) == 0 {
			continue
		}
		statements = append(statements, strings.Join(kept, "\n"))
	}

	return statements
}
