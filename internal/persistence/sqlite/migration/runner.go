package migration

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner owns the registered migration set and its dependency graph and
// drives resolution, execution, and ledger updates for a batch. Progress
// and results are guarded so a reporting path can observe a long batch from
// another goroutine.
type Runner struct {
	executor Executor

	migrations map[int]Migration
	graph      map[int][]int

	mu       sync.Mutex
	results  []Result
	progress Progress
}

// NewRunner creates a Runner with an empty registry.
func NewRunner(executor Executor) *Runner {
	return &Runner{
		executor:   executor,
		migrations: make(map[int]Migration),
		graph:      make(map[int][]int),
	}
}

// Register adds a migration to the runner. It verifies the content
// checksum, rejects duplicate versions, and rejects dependencies that do
// not point strictly backwards: the apply path prunes candidates by version
// range before resolving, so a forward dependency could execute outside the
// requested window.
func (r *Runner) Register(m Migration) error {
	if err := m.ValidateChecksum(); err != nil {
		return err
	}
	if _, exists := r.migrations[m.Version]; exists {
		return NewIntegrityError(m.Version, ErrDuplicateVersion)
	}
	for _, dep := range m.Dependencies {
		if dep >= m.Version {
			return NewDependencyError(m.Version, dep, ErrForwardDependency)
		}
	}

	r.graph[m.Version] = append([]int(nil), m.Dependencies...)
	r.migrations[m.Version] = m

	logrus.WithFields(logrus.Fields{
		"version": m.Version,
		"name":    m.Name,
	}).Debug("Registered migration")
	return nil
}

// RegisterAll registers migrations in order, stopping at the first error.
func (r *Runner) RegisterAll(migrations []Migration) error {
	for _, m := range migrations {
		if err := r.Register(m); err != nil {
			return err
		}
	}
	return nil
}

// Run applies the registered migrations with versions in (current, target]
// that are not yet in the ledger, in dependency order. Each migration
// commits atomically together with its ledger row. On the first failure the
// batch halts and the partial result list is returned along with the error;
// migrations already committed stay applied.
func (r *Runner) Run(ctx context.Context, current, target int) ([]Result, error) {
	logrus.WithFields(logrus.Fields{
		"from": current,
		"to":   target,
	}).Info("Running migrations")

	if err := r.executor.EnsureLedger(ctx); err != nil {
		return nil, err
	}

	applied, err := r.appliedSet(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]int, 0, len(r.migrations))
	for version := range r.migrations {
		if version > current && version <= target {
			candidates = append(candidates, version)
		}
	}
	if len(candidates) == 0 {
		logrus.Info("No migrations to run")
		return nil, nil
	}

	order, err := r.resolveDependencies(candidates)
	if err != nil {
		return nil, err
	}

	pending := make([]int, 0, len(order))
	for _, version := range order {
		if !applied[version] {
			pending = append(pending, version)
		}
	}
	if len(pending) == 0 {
		logrus.Info("All requested migrations are already applied")
		return nil, nil
	}

	r.initProgress(len(pending))

	results := make([]Result, 0, len(pending))
	for _, version := range pending {
		m := r.migrations[version]
		r.setCurrent(m.Name)

		logrus.WithFields(logrus.Fields{
			"version": m.Version,
			"name":    m.Name,
		}).Info("Executing migration")

		result, execErr := r.attempt(m, m.Name, func() error { return r.executor.Apply(ctx, m) })
		results = append(results, result)

		if execErr != nil {
			logrus.WithFields(logrus.Fields{
				"version": m.Version,
				"name":    m.Name,
			}).WithError(execErr).Error("Migration failed, halting batch")
			return results, execErr
		}

		logrus.WithFields(logrus.Fields{
			"version":  m.Version,
			"duration": result.ExecutionTime,
		}).Info("Migration applied")
	}

	return results, nil
}

// Rollback reverts applied migrations with versions in (target, current],
// newest first. Migrations without reverse SQL are skipped with a warning.
// On the first hard failure the batch halts and partial results are
// returned; migrations already rolled back in this call stay rolled back.
func (r *Runner) Rollback(ctx context.Context, current, target int) ([]Result, error) {
	if target >= current {
		return nil, NewDependencyError(target, 0, ErrInvalidRollbackTarget)
	}

	logrus.WithFields(logrus.Fields{
		"from": current,
		"to":   target,
	}).Info("Rolling back migrations")

	if err := r.executor.EnsureLedger(ctx); err != nil {
		return nil, err
	}

	applied, err := r.executor.AppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	reverting := make([]int, 0, len(applied))
	for _, version := range applied {
		if version > target && version <= current {
			reverting = append(reverting, version)
		}
	}
	if len(reverting) == 0 {
		logrus.Info("No migrations to roll back")
		return nil, nil
	}
	sort.Sort(sort.Reverse(sort.IntSlice(reverting)))

	r.initProgress(len(reverting))

	results := make([]Result, 0, len(reverting))
	for _, version := range reverting {
		m, ok := r.migrations[version]
		if !ok {
			return results, NewDependencyError(version, version, ErrUnregisteredVersion)
		}

		if !m.Reversible() {
			logrus.WithFields(logrus.Fields{
				"version": m.Version,
				"name":    m.Name,
			}).Warn("Migration has no rollback SQL, skipping")
			continue
		}

		name := "rollback: " + m.Name
		r.setCurrent(name)

		logrus.WithFields(logrus.Fields{
			"version": m.Version,
			"name":    m.Name,
		}).Info("Rolling back migration")

		result, execErr := r.attempt(m, name, func() error { return r.executor.Revert(ctx, m) })
		results = append(results, result)

		if execErr != nil {
			logrus.WithFields(logrus.Fields{
				"version": m.Version,
				"name":    m.Name,
			}).WithError(execErr).Error("Rollback failed, halting batch")
			return results, execErr
		}
	}

	return results, nil
}

// attempt executes one migration step, times it, and updates progress and
// the accumulated result list.
func (r *Runner) attempt(m Migration, name string, execute func() error) (Result, error) {
	started := time.Now()
	execErr := execute()
	elapsed := time.Since(started)

	result := Result{
		Version:       m.Version,
		Name:          name,
		Success:       execErr == nil,
		ExecutionTime: elapsed,
		AppliedAt:     time.Now().UTC(),
	}
	if execErr != nil {
		result.ErrorMessage = execErr.Error()
		r.markFailed(name)
	} else {
		r.completeOne()
	}
	r.appendResult(result)

	return result, execErr
}

// Validate audits the entire registered set: every checksum, every
// dependency, and the whole graph for cycles. Gaps in the version sequence
// are logged as hygiene warnings, not errors. Intended to run at startup
// before any execution.
func (r *Runner) Validate() error {
	versions := r.sortedVersions()

	logrus.WithField("count", len(versions)).Info("Validating registered migrations")

	for i, version := range versions {
		if i > 0 && version != versions[i-1]+1 {
			logrus.WithFields(logrus.Fields{
				"after":  versions[i-1],
				"before": version,
			}).Warn("Gap in migration version sequence")
		}
	}

	for _, version := range versions {
		m := r.migrations[version]
		if err := m.ValidateChecksum(); err != nil {
			return err
		}
		for _, dep := range m.Dependencies {
			if _, ok := r.migrations[dep]; !ok {
				return NewDependencyError(version, dep, ErrMissingDependency)
			}
		}
	}

	if _, err := r.resolveDependencies(versions); err != nil {
		return err
	}

	logrus.Info("All migrations validated")
	return nil
}

// Applied ensures the ledger exists and returns the applied versions.
func (r *Runner) Applied(ctx context.Context) ([]int, error) {
	if err := r.executor.EnsureLedger(ctx); err != nil {
		return nil, err
	}
	return r.executor.AppliedVersions(ctx)
}

// Get returns the registered migration for a version.
func (r *Runner) Get(version int) (Migration, bool) {
	m, ok := r.migrations[version]
	return m, ok
}

// LatestVersion returns the highest registered version, or zero when the
// registry is empty.
func (r *Runner) LatestVersion() int {
	latest := 0
	for version := range r.migrations {
		if version > latest {
			latest = version
		}
	}
	return latest
}

// Count returns the number of registered migrations.
func (r *Runner) Count() int {
	return len(r.migrations)
}

// ProgressSnapshot returns a consistent point-in-time copy of the batch
// progress, safe to read from any goroutine.
func (r *Runner) ProgressSnapshot() Progress {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.progress
	if r.progress.EstimatedCompletion != nil {
		estimate := *r.progress.EstimatedCompletion
		snapshot.EstimatedCompletion = &estimate
	}
	return snapshot
}

// Results returns a copy of the accumulated execution results.
func (r *Runner) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Result(nil), r.results...)
}

func (r *Runner) appliedSet(ctx context.Context) (map[int]bool, error) {
	versions, err := r.executor.AppliedVersions(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[int]bool, len(versions))
	for _, version := range versions {
		set[version] = true
	}
	return set, nil
}

func (r *Runner) sortedVersions() []int {
	versions := make([]int, 0, len(r.migrations))
	for version := range r.migrations {
		versions = append(versions, version)
	}
	sort.Ints(versions)
	return versions
}

func (r *Runner) initProgress(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress = Progress{
		Total:     total,
		StartedAt: time.Now().UTC(),
	}
}

func (r *Runner) setCurrent(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress.Current = name
}

func (r *Runner) markFailed(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress.Failed = name
	r.progress.Current = ""
}

// completeOne increments the completed counter and recomputes the
// completion estimate from the running average per migration.
func (r *Runner) completeOne() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.progress.Completed++
	r.progress.Current = ""

	remaining := r.progress.Total - r.progress.Completed
	if remaining > 0 && r.progress.Completed > 0 {
		elapsed := time.Since(r.progress.StartedAt)
		average := elapsed / time.Duration(r.progress.Completed)
		estimate := time.Now().UTC().Add(average * time.Duration(remaining))
		r.progress.EstimatedCompletion = &estimate
	} else {
		r.progress.EstimatedCompletion = nil
	}
}

func (r *Runner) appendResult(result Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = append(r.results, result)
}

