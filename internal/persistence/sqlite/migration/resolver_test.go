package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// registryWith bypasses Register so tests can build graphs that Register
// would reject, such as cycles.
func registryWith(t *testing.T, migrations ...Migration) *Runner {
	t.Helper()
	r := NewRunner(nil)
	for _, m := range migrations {
		r.migrations[m.Version] = m
		r.graph[m.Version] = append([]int(nil), m.Dependencies...)
	}
	return r
}

func TestResolveOrdersDependenciesFirst(t *testing.T) {
	r := registryWith(t,
		New(1, "base", "", "SELECT 1", "", nil),
		New(2, "mid", "", "SELECT 1", "", []int{1}),
		New(3, "top", "", "SELECT 1", "", []int{1, 2}),
	)

	order, err := r.resolveDependencies([]int{3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestResolveEmitsEachVersionOnce(t *testing.T) {
	// Diamond: 4 depends on 2 and 3, both of which depend on 1.
	r := registryWith(t,
		New(1, "base", "", "SELECT 1", "", nil),
		New(2, "left", "", "SELECT 1", "", []int{1}),
		New(3, "right", "", "SELECT 1", "", []int{1}),
		New(4, "join", "", "SELECT 1", "", []int{2, 3}),
	)

	order, err := r.resolveDependencies([]int{4, 3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, order)
}

func TestResolvePullsInUnrequestedDependencies(t *testing.T) {
	r := registryWith(t,
		New(1, "base", "", "SELECT 1", "", nil),
		New(2, "top", "", "SELECT 1", "", []int{1}),
	)

	order, err := r.resolveDependencies([]int{2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, order)
}

func TestResolveDetectsCycle(t *testing.T) {
	r := registryWith(t,
		New(1, "a", "", "SELECT 1", "", []int{2}),
		New(2, "b", "", "SELECT 1", "", []int{1}),
	)

	_, err := r.resolveDependencies([]int{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicDependency)
}

func TestResolveDetectsSelfCycle(t *testing.T) {
	r := registryWith(t,
		New(1, "a", "", "SELECT 1", "", []int{1}),
	)

	_, err := r.resolveDependencies([]int{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicDependency)
}

func TestResolveDetectsMissingDependency(t *testing.T) {
	r := registryWith(t,
		New(2, "top", "", "SELECT 1", "", []int{1}),
	)

	_, err := r.resolveDependencies([]int{2})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDependency)

	var de *DependencyError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Version)
	assert.Equal(t, 1, de.Dependency)
}

func TestResolveEmptyInput(t *testing.T) {
	r := registryWith(t)

	order, err := r.resolveDependencies(nil)
	require.NoError(t, err)
	assert.Empty(t, order)
}
