package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/example/crane-asset-manager/internal/persistence/sqlite/migration"
)

// Store owns the SQLite database handle, the migration runner, and the
// repositories backed by the database. It is the single entry point the
// application layer uses for persistence.
type Store struct {
	db     *sql.DB
	runner *migration.Runner

	users       *UserRepository
	locations   *LocationRepository
	assets      *AssetRepository
	inspections *InspectionRepository
	maintenance *MaintenanceRepository
	media       *MediaRepository
	sessions    *SessionRepository
}

// SchemaStatus describes where the database schema stands relative to the
// registered migration set.
type SchemaStatus struct {
	CurrentVersion int                `json:"current_version"`
	LatestVersion  int                `json:"latest_version"`
	Applied        []int              `json:"applied"`
	Pending        []int              `json:"pending"`
	Results        []migration.Result `json:"results,omitempty"`
}

// UpToDate reports whether every registered migration has been applied.
func (s SchemaStatus) UpToDate() bool {
	return len(s.Pending) == 0
}

// Open opens the database described by cfg and wires the migration runner
// and repositories. It does not touch the schema; call Migrate before
// serving requests.
func Open(cfg Config) (*Store, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	runner := migration.NewRunner(migration.NewSQLExecutor(db))
	if err := runner.RegisterAll(schemaMigrations()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register schema migrations: %w", err)
	}

	store := &Store{
		db:     db,
		runner: runner,
	}
	store.users = NewUserRepository(db)
	store.locations = NewLocationRepository(db)
	store.assets = NewAssetRepository(db)
	store.inspections = NewInspectionRepository(db)
	store.maintenance = NewMaintenanceRepository(db)
	store.media = NewMediaRepository(db)
	store.sessions = NewSessionRepository(db)

	return store, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for callers that need raw access, such
// as tests.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate validates the registered migration set and applies everything
// newer than the current schema version.
func (s *Store) Migrate(ctx context.Context) ([]migration.Result, error) {
	return s.MigrateTo(ctx, s.runner.LatestVersion())
}

// MigrateTo migrates up to the given version, which must be registered.
func (s *Store) MigrateTo(ctx context.Context, target int) ([]migration.Result, error) {
	if err := s.runner.Validate(); err != nil {
		return nil, fmt.Errorf("migration validation failed: %w", err)
	}

	current, err := s.currentVersion(ctx)
	if err != nil {
		return nil, err
	}

	if current >= target {
		logrus.WithField("version", current).Info("Database schema is up to date")
		return nil, nil
	}

	results, err := s.runner.Run(ctx, current, target)
	if err != nil {
		return results, fmt.Errorf("migration failed: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"from": current,
		"to":   target,
	}).Info("Database schema migrated")
	return results, nil
}

// Rollback reverts the schema down to target. Target must be lower than the
// current version.
func (s *Store) Rollback(ctx context.Context, target int) ([]migration.Result, error) {
	current, err := s.currentVersion(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.runner.Rollback(ctx, current, target)
	if err != nil {
		return results, fmt.Errorf("rollback failed: %w", err)
	}
	return results, nil
}

// Status reports applied and pending versions along with the accumulated
// execution results of this process.
func (s *Store) Status(ctx context.Context) (SchemaStatus, error) {
	applied, err := s.runner.Applied(ctx)
	if err != nil {
		return SchemaStatus{}, err
	}

	appliedSet := make(map[int]bool, len(applied))
	current := 0
	for _, version := range applied {
		appliedSet[version] = true
		if version > current {
			current = version
		}
	}

	var pending []int
	for version := 1; version <= s.runner.LatestVersion(); version++ {
		if _, ok := s.runner.Get(version); ok && !appliedSet[version] {
			pending = append(pending, version)
		}
	}

	return SchemaStatus{
		CurrentVersion: current,
		LatestVersion:  s.runner.LatestVersion(),
		Applied:        applied,
		Pending:        pending,
		Results:        s.runner.Results(),
	}, nil
}

// Validate audits the registered migration set without executing anything.
func (s *Store) Validate() error {
	return s.runner.Validate()
}

// Progress returns a snapshot of the in-flight migration batch, if any.
func (s *Store) Progress() migration.Progress {
	return s.runner.ProgressSnapshot()
}

// currentVersion returns the highest applied version, or zero for an empty
// ledger.
func (s *Store) currentVersion(ctx context.Context) (int, error) {
	applied, err := s.runner.Applied(ctx)
	if err != nil {
		return 0, err
	}
	current := 0
	for _, version := range applied {
		if version > current {
			current = version
		}
	}
	return current, nil
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository { return s.users }

// Locations returns the location repository.
func (s *Store) Locations() *LocationRepository { return s.locations }

// Assets returns the asset repository.
func (s *Store) Assets() *AssetRepository { return s.assets }

// Inspections returns the inspection repository.
func (s *Store) Inspections() *InspectionRepository { return s.inspections }

// Maintenance returns the maintenance record repository.
func (s *Store) Maintenance() *MaintenanceRepository { return s.maintenance }

// Media returns the media file repository.
func (s *Store) Media() *MediaRepository { return s.media }

// Sessions returns the session repository.
func (s *Store) Sessions() *SessionRepository { return s.sessions }
