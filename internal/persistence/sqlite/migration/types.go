package migration

import (
	"context"
	"time"
)

// Result records one execution attempt for a single migration within a
// batch. Results are immutable once produced.
type Result struct {
	Version       int           `json:"version"`
	Name          string        `json:"name"`
	Success       bool          `json:"success"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	ExecutionTime time.Duration `json:"execution_time"`
	AppliedAt     time.Time     `json:"applied_at"`
}

// Progress describes an in-flight batch. Snapshots are value copies and
// safe to share between goroutines.
type Progress struct {
	// Total is the number of migrations in the current batch.
	Total int `json:"total"`

	// Completed counts migrations that finished successfully.
	Completed int `json:"completed"`

	// Current names the migration executing right now, if any.
	Current string `json:"current,omitempty"`

	// Failed names the last migration that failed, if any.
	Failed string `json:"failed,omitempty"`

	// StartedAt is when the batch began.
	StartedAt time.Time `json:"started_at"`

	// EstimatedCompletion projects batch completion from the running
	// average of completed migrations. Nil until at least one completes.
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
}

// Executor applies or reverts a single migration against the database.
// Implementations must commit the schema change and its ledger record in
// the same transaction.
type Executor interface {
	// EnsureLedger creates the migration_history table if it is absent.
	EnsureLedger(ctx context.Context) error

	// AppliedVersions returns the ledgered versions in ascending order.
	AppliedVersions(ctx context.Context) ([]int, error)

	// Apply executes the migration's forward statements and appends its
	// ledger row inside one transaction.
	Apply(ctx context.Context, m Migration) error

	// Revert executes the migration's reverse statements and deletes its
	// ledger row inside one transaction.
	Revert(ctx context.Context, m Migration) error
}
