package migration

import (
	"errors"
	"fmt"
)

// Sentinel errors for the engine's failure taxonomy. Integrity and
// dependency errors are fatal before any SQL runs; execution errors abort
// the batch at the failing migration.
var (
	// ErrChecksumMismatch indicates a migration body no longer matches its
	// recorded checksum.
	ErrChecksumMismatch = errors.New("migration checksum mismatch")

	// ErrDuplicateVersion indicates two migrations were registered with the
	// same version.
	ErrDuplicateVersion = errors.New("duplicate migration version")

	// ErrMissingDependency indicates a migration depends on a version that
	// is not registered.
	ErrMissingDependency = errors.New("migration depends on unregistered version")

	// ErrCyclicDependency indicates the dependency graph contains a cycle.
	ErrCyclicDependency = errors.New("circular migration dependency")

	// ErrForwardDependency indicates a migration depends on a version not
	// strictly lower than its own, which would break ascending execution.
	ErrForwardDependency = errors.New("migration dependency must have a lower version")

	// ErrUnregisteredVersion indicates the ledger records a version the
	// current binary does not know about.
	ErrUnregisteredVersion = errors.New("applied migration version is not registered")

	// ErrInvalidRollbackTarget indicates a rollback was requested to a
	// version at or above the current one.
	ErrInvalidRollbackTarget = errors.New("rollback target must be below the current version")
)

// IntegrityError reports a checksum mismatch or version collision with the
// migration version and, for checksum failures, both hash values.
type IntegrityError struct {
	Version  int
	Expected string
	Actual   string
	Err      error
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	if e.Expected != "" || e.Actual != "" {
		return fmt.Sprintf("migration %d: %v: expected %s, got %s", e.Version, e.Err, e.Expected, e.Actual)
	}
	return fmt.Sprintf("migration %d: %v", e.Version, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// NewIntegrityError creates an IntegrityError. The hash arguments are
// optional and only meaningful for checksum mismatches.
func NewIntegrityError(version int, err error, hashes ...string) *IntegrityError {
	ie := &IntegrityError{Version: version, Err: err}
	if len(hashes) > 0 {
		ie.Expected = hashes[0]
	}
	if len(hashes) > 1 {
		ie.Actual = hashes[1]
	}
	return ie
}

// DependencyError reports a missing, forward, or cyclic dependency detected
// during registration or resolution.
type DependencyError struct {
	// Version is the migration at which the problem was detected.
	Version int

	// Dependency is the offending dependency version, when applicable.
	// Zero for cycle errors, where Version names the revisited node.
	Dependency int

	Err error
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	switch {
	case errors.Is(e.Err, ErrCyclicDependency):
		return fmt.Sprintf("migration %d: %v", e.Version, e.Err)
	case e.Dependency != 0 || errors.Is(e.Err, ErrMissingDependency) || errors.Is(e.Err, ErrForwardDependency):
		return fmt.Sprintf("migration %d: %v: %d", e.Version, e.Err, e.Dependency)
	default:
		return fmt.Sprintf("migration %d: %v", e.Version, e.Err)
	}
}

// Unwrap returns the underlying sentinel error.
func (e *DependencyError) Unwrap() error {
	return e.Err
}

// NewDependencyError creates a DependencyError.
func NewDependencyError(version, dependency int, err error) *DependencyError {
	return &DependencyError{Version: version, Dependency: dependency, Err: err}
}

// ExecutionError reports a database failure while applying or reverting a
// migration. Statement carries the failing statement text for diagnosis;
// it is empty for transaction-level failures.
type ExecutionError struct {
	Version   int
	Operation string
	Statement string
	Err       error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Statement != "" {
		return fmt.Sprintf("migration %d: %s: %v (statement: %s)", e.Version, e.Operation, e.Err, e.Statement)
	}
	return fmt.Sprintf("migration %d: %s: %v", e.Version, e.Operation, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError creates an ExecutionError.
func NewExecutionError(version int, operation, statement string, err error) *ExecutionError {
	return &ExecutionError{Version: version, Operation: operation, Statement: statement, Err: err}
}
