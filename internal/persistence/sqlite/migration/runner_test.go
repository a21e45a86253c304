package migration

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records calls in memory and can be told to fail at a
// specific version.
type fakeExecutor struct {
	applied  []int
	reverted []int
	failAt   int
}

func (f *fakeExecutor) EnsureLedger(ctx context.Context) error { return nil }

func (f *fakeExecutor) AppliedVersions(ctx context.Context) ([]int, error) {
	return append([]int(nil), f.applied...), nil
}

func (f *fakeExecutor) Apply(ctx context.Context, m Migration) error {
	if f.failAt != 0 && m.Version == f.failAt {
		return NewExecutionError(m.Version, "execute statement 1", m.UpSQL, fmt.Errorf("table already exists"))
	}
	f.applied = append(f.applied, m.Version)
	return nil
}

func (f *fakeExecutor) Revert(ctx context.Context, m Migration) error {
	if f.failAt != 0 && m.Version == f.failAt {
		return NewExecutionError(m.Version, "execute rollback statement 1", m.DownSQL, fmt.Errorf("no such table"))
	}
	kept := f.applied[:0]
	for _, v := range f.applied {
		if v != m.Version {
			kept = append(kept, v)
		}
	}
	f.applied = kept
	f.reverted = append(f.reverted, m.Version)
	return nil
}

func testSet(n int) []Migration {
	migrations := make([]Migration, 0, n)
	for v := 1; v <= n; v++ {
		var deps []int
		if v > 1 {
			deps = []int{v - 1}
		}
		migrations = append(migrations, New(v,
			fmt.Sprintf("step_%d", v), "",
			fmt.Sprintf("CREATE TABLE t%d (id INTEGER)", v),
			fmt.Sprintf("DROP TABLE t%d", v),
			deps))
	}
	return migrations
}

func newTestRunner(t *testing.T, exec *fakeExecutor, migrations []Migration) *Runner {
	t.Helper()
	r := NewRunner(exec)
	require.NoError(t, r.RegisterAll(migrations))
	return r
}

func TestRegisterRejectsDuplicateVersion(t *testing.T) {
	r := NewRunner(&fakeExecutor{})
	require.NoError(t, r.Register(New(1, "a", "", "SELECT 1", "", nil)))

	err := r.Register(New(1, "b", "", "SELECT 2", "", nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateVersion)
}

func TestRegisterRejectsForwardDependency(t *testing.T) {
	r := NewRunner(&fakeExecutor{})

	err := r.Register(New(1, "a", "", "SELECT 1", "", []int{2}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForwardDependency)

	err = r.Register(New(1, "a", "", "SELECT 1", "", []int{1}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForwardDependency)
}

func TestRegisterRejectsTamperedChecksum(t *testing.T) {
	r := NewRunner(&fakeExecutor{})
	m := New(1, "a", "", "SELECT 1", "", nil)
	m.Checksum = "0000"

	assert.ErrorIs(t, r.Register(m), ErrChecksumMismatch)
}

func TestRunAppliesInDependencyOrder(t *testing.T) {
	exec := &fakeExecutor{}
	r := newTestRunner(t, exec, testSet(5))

	results, err := r.Run(context.Background(), 0, 5)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, exec.applied)
	require.Len(t, results, 5)
	for i, result := range results {
		assert.Equal(t, i+1, result.Version)
		assert.True(t, result.Success)
		assert.Empty(t, result.ErrorMessage)
	}
}

func TestRunPrunesByVersionRange(t *testing.T) {
	exec := &fakeExecutor{applied: []int{1, 2}}
	r := newTestRunner(t, exec, testSet(5))

	results, err := r.Run(context.Background(), 2, 4)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4}, exec.applied)
	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Version)
	assert.Equal(t, 4, results[1].Version)
}

func TestRunSkipsAlreadyApplied(t *testing.T) {
	exec := &fakeExecutor{applied: []int{1, 3}}
	r := newTestRunner(t, exec, testSet(3))

	results, err := r.Run(context.Background(), 0, 3)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 2}, exec.applied)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Version)
}

func TestRunIsIdempotent(t *testing.T) {
	exec := &fakeExecutor{}
	r := newTestRunner(t, exec, testSet(3))

	_, err := r.Run(context.Background(), 0, 3)
	require.NoError(t, err)

	results, err := r.Run(context.Background(), 0, 3)
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Equal(t, []int{1, 2, 3}, exec.applied)
}

func TestRunWithNoCandidates(t *testing.T) {
	exec := &fakeExecutor{}
	r := newTestRunner(t, exec, testSet(3))

	results, err := r.Run(context.Background(), 3, 3)
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Empty(t, exec.applied)
}

func TestRunHaltsOnFirstFailure(t *testing.T) {
	exec := &fakeExecutor{failAt: 3}
	r := newTestRunner(t, exec, testSet(5))

	results, err := r.Run(context.Background(), 0, 5)
	require.Error(t, err)

	var ee *ExecutionError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 3, ee.Version)
	assert.Contains(t, ee.Statement, "t3")

	// 1 and 2 stay applied, 3 failed, 4 and 5 never ran.
	assert.Equal(t, []int{1, 2}, exec.applied)
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.True(t, results[1].Success)
	assert.False(t, results[2].Success)
	assert.Contains(t, results[2].ErrorMessage, "table already exists")
}

func TestRunProgress(t *testing.T) {
	exec := &fakeExecutor{}
	r := newTestRunner(t, exec, testSet(4))

	_, err := r.Run(context.Background(), 0, 4)
	require.NoError(t, err)

	progress := r.ProgressSnapshot()
	assert.Equal(t, 4, progress.Total)
	assert.Equal(t, 4, progress.Completed)
	assert.Empty(t, progress.Current)
	assert.Empty(t, progress.Failed)
	assert.Nil(t, progress.EstimatedCompletion)
}

func TestRunProgressRecordsFailure(t *testing.T) {
	exec := &fakeExecutor{failAt: 2}
	r := newTestRunner(t, exec, testSet(3))

	_, err := r.Run(context.Background(), 0, 3)
	require.Error(t, err)

	progress := r.ProgressSnapshot()
	assert.Equal(t, 3, progress.Total)
	assert.Equal(t, 1, progress.Completed)
	assert.Equal(t, "step_2", progress.Failed)
}

func TestResultsAccumulateAcrossBatches(t *testing.T) {
	exec := &fakeExecutor{}
	r := newTestRunner(t, exec, testSet(4))

	_, err := r.Run(context.Background(), 0, 2)
	require.NoError(t, err)
	_, err = r.Run(context.Background(), 2, 4)
	require.NoError(t, err)

	results := r.Results()
	require.Len(t, results, 4)
	assert.Equal(t, 1, results[0].Version)
	assert.Equal(t, 4, results[3].Version)
}

func TestRollbackRevertsNewestFirst(t *testing.T) {
	exec := &fakeExecutor{applied: []int{1, 2, 3}}
	r := newTestRunner(t, exec, testSet(3))

	results, err := r.Rollback(context.Background(), 3, 1)
	require.NoError(t, err)

	assert.Equal(t, []int{3, 2}, exec.reverted)
	assert.Equal(t, []int{1}, exec.applied)
	require.Len(t, results, 2)
	assert.Equal(t, "rollback: step_3", results[0].Name)
	assert.Equal(t, "rollback: step_2", results[1].Name)
}

func TestRollbackRejectsTargetAtOrAboveCurrent(t *testing.T) {
	r := newTestRunner(t, &fakeExecutor{}, testSet(3))

	_, err := r.Rollback(context.Background(), 3, 3)
	assert.ErrorIs(t, err, ErrInvalidRollbackTarget)

	_, err = r.Rollback(context.Background(), 3, 5)
	assert.ErrorIs(t, err, ErrInvalidRollbackTarget)
}

func TestRollbackSkipsIrreversibleMigrations(t *testing.T) {
	migrations := testSet(3)
	migrations[1] = New(2, "step_2", "", migrations[1].UpSQL, "", []int{1})

	exec := &fakeExecutor{applied: []int{1, 2, 3}}
	r := newTestRunner(t, exec, migrations)

	results, err := r.Rollback(context.Background(), 3, 0)
	require.NoError(t, err)

	// 2 has no rollback SQL and is skipped without a result.
	assert.Equal(t, []int{3, 1}, exec.reverted)
	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Version)
	assert.Equal(t, 1, results[1].Version)
}

func TestRollbackFailsOnUnregisteredVersion(t *testing.T) {
	exec := &fakeExecutor{applied: []int{1, 2, 7}}
	r := newTestRunner(t, exec, testSet(3))

	_, err := r.Rollback(context.Background(), 7, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnregisteredVersion)
}

func TestRollbackHaltsOnFailure(t *testing.T) {
	exec := &fakeExecutor{applied: []int{1, 2, 3}, failAt: 2}
	r := newTestRunner(t, exec, testSet(3))

	results, err := r.Rollback(context.Background(), 3, 0)
	require.Error(t, err)

	assert.Equal(t, []int{3}, exec.reverted)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
}

func TestValidateAcceptsHealthySet(t *testing.T) {
	r := newTestRunner(t, &fakeExecutor{}, testSet(5))
	assert.NoError(t, r.Validate())
}

func TestValidateToleratesVersionGaps(t *testing.T) {
	r := NewRunner(&fakeExecutor{})
	require.NoError(t, r.Register(New(1, "a", "", "SELECT 1", "", nil)))
	require.NoError(t, r.Register(New(5, "b", "", "SELECT 2", "", []int{1})))

	assert.NoError(t, r.Validate())
}

func TestValidateDetectsMissingDependency(t *testing.T) {
	r := NewRunner(&fakeExecutor{})
	require.NoError(t, r.Register(New(2, "b", "", "SELECT 2", "", []int{1})))

	err := r.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestValidateDetectsTamperedMigration(t *testing.T) {
	r := newTestRunner(t, &fakeExecutor{}, testSet(2))
	m := r.migrations[2]
	m.UpSQL = "DROP TABLE t1"
	r.migrations[2] = m

	err := r.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestLatestVersionAndCount(t *testing.T) {
	r := newTestRunner(t, &fakeExecutor{}, testSet(3))
	assert.Equal(t, 3, r.LatestVersion())
	assert.Equal(t, 3, r.Count())

	empty := NewRunner(&fakeExecutor{})
	assert.Equal(t, 0, empty.LatestVersion())
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	err := NewExecutionError(3, "execute statement 2", "DROP TABLE t", errors.New("locked"))
	assert.Contains(t, err.Error(), "migration 3")
	assert.Contains(t, err.Error(), "DROP TABLE t")

	de := NewDependencyError(4, 2, ErrMissingDependency)
	assert.ErrorIs(t, de, ErrMissingDependency)
	assert.Contains(t, de.Error(), "migration 4")
}
