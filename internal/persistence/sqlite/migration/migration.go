package migration

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Migration describes one atomic schema change. A Migration is immutable
// once constructed; the durable record of whether it has been applied lives
// in the migration_history table, never on the struct itself.
type Migration struct {
	// Version is the globally unique identity of the migration and the
	// total order used for range pruning.
	Version int

	// Name is a short human-readable label.
	Name string

	// Description explains what the migration does. Not used for logic.
	Description string

	// UpSQL holds the forward statements, separated by semicolons.
	UpSQL string

	// DownSQL holds the reverse statements. Empty means the migration
	// cannot be rolled back.
	DownSQL string

	// Dependencies lists migration versions that must be applied first.
	Dependencies []int

	// Checksum is the SHA-256 hex digest of UpSQL, fixed at construction.
	Checksum string
}

// New constructs a Migration and computes its content checksum.
func New(version int, name, description, upSQL, downSQL string, dependencies []int) Migration {
	return Migration{
		Version:      version,
		Name:         name,
		Description:  description,
		UpSQL:        upSQL,
		DownSQL:      downSQL,
		Dependencies: append([]int(nil), dependencies...),
		Checksum:     checksum(upSQL),
	}
}

// checksum returns the SHA-256 hex digest of the SQL body. The digest is
// stable across runs and processes so a ledger written by one binary can be
// verified by another.
func checksum(sql string) string {
	sum := sha256.Sum256([]byte(sql))
	return hex.EncodeToString(sum[:])
}

// ValidateChecksum recomputes the content hash and fails if the stored
// checksum no longer matches, which means the SQL body was edited after the
// checksum was recorded.
func (m Migration) ValidateChecksum() error {
	actual := checksum(m.UpSQL)
	if actual != m.Checksum {
		return NewIntegrityError(m.Version, ErrChecksumMismatch, m.Checksum, actual)
	}
	return nil
}

// Reversible reports whether the migration carries rollback SQL.
func (m Migration) Reversible() bool {
	return strings.TrimSpace(m.DownSQL) != ""
}
