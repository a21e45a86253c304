package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComputesChecksum(t *testing.T) {
	m := New(1, "create_widgets", "widgets table", "CREATE TABLE widgets (id INTEGER)", "DROP TABLE widgets", nil)

	assert.Len(t, m.Checksum, 64)
	assert.NoError(t, m.ValidateChecksum())
}

func TestChecksumIsDeterministic(t *testing.T) {
	a := New(1, "a", "", "CREATE TABLE t (id INTEGER)", "", nil)
	b := New(2, "b", "different name and version", "CREATE TABLE t (id INTEGER)", "", nil)

	assert.Equal(t, a.Checksum, b.Checksum, "checksum depends only on the forward SQL")
}

func TestChecksumChangesWithBody(t *testing.T) {
	a := New(1, "a", "", "CREATE TABLE t (id INTEGER)", "", nil)
	b := New(1, "a", "", "CREATE TABLE t (id INTEGER, name TEXT)", "", nil)

	assert.NotEqual(t, a.Checksum, b.Checksum)
}

func TestValidateChecksumDetectsTampering(t *testing.T) {
	m := New(1, "create_widgets", "", "CREATE TABLE widgets (id INTEGER)", "", nil)
	m.UpSQL = "DROP TABLE users"

	err := m.ValidateChecksum()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	var ie *IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Version)
	assert.NotEmpty(t, ie.Expected)
	assert.NotEmpty(t, ie.Actual)
	assert.NotEqual(t, ie.Expected, ie.Actual)
}

func TestReversible(t *testing.T) {
	assert.True(t, New(1, "a", "", "CREATE TABLE t (id INTEGER)", "DROP TABLE t", nil).Reversible())
	assert.False(t, New(1, "a", "", "CREATE TABLE t (id INTEGER)", "", nil).Reversible())
	assert.False(t, New(1, "a", "", "CREATE TABLE t (id INTEGER)", "   \n\t", nil).Reversible())
}

func TestDependenciesAreCopied(t *testing.T) {
	deps := []int{1, 2}
	m := New(3, "c", "", "SELECT 1", "", deps)

	deps[0] = 99
	assert.Equal(t, []int{1, 2}, m.Dependencies)
}
