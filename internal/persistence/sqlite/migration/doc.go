// Package migration provides the schema migration engine for the embedded
// SQLite database.
//
// Migrations are registered in code as versioned, checksummed units with
// forward and reverse SQL bodies and explicit version dependencies. The
// package supports:
//
//   - Dependency-aware execution ordering with cycle detection
//   - SHA-256 content verification of every migration body
//   - Transactional execution where the schema change and its history
//     record commit atomically, or not at all
//   - Rollback from newest to oldest with per-migration reverse SQL
//   - Live progress reporting safe to read from other goroutines
//
// The engine maintains a migration_history table in the target database to
// track applied versions and prevent duplicate execution. A batch halts on
// the first failure; migrations already committed in that batch stay
// applied.
//
// Example usage:
//
//	runner := migration.NewRunner(migration.NewSQLExecutor(db))
//	if err := runner.RegisterAll(migrations); err != nil {
//		log.Fatalf("bad migration set: %v", err)
//	}
//	if err := runner.Validate(); err != nil {
//		log.Fatalf("migration validation failed: %v", err)
//	}
//	results, err := runner.Run(ctx, current, target)
package migration
