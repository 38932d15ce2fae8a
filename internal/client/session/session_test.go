package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "courseconnect", "session.json"))
}

func TestStore_RoundTrip(t *testing.T) {
	store := newStore(t)

	assert.Empty(t, store.CurrentStudentID())

	require.NoError(t, store.SetCurrentStudentID("student-1"))
	require.NoError(t, store.SetCurrentStudentInfo(&profile{ID: "student-1", FullName: "Alice"}))

	assert.Equal(t, "student-1", store.CurrentStudentID())

	var p profile
	require.True(t, store.CurrentStudentInfo(&p))
	assert.Equal(t, "Alice", p.FullName)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	require.NoError(t, NewStore(path).SetCurrentStudentID("student-1"))

	assert.Equal(t, "student-1", NewStore(path).CurrentStudentID())
}

func TestStore_EmptyIDRemovesKey(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SetCurrentStudentID("student-1"))
	require.NoError(t, store.SetCurrentStudentID(""))

	assert.Empty(t, store.CurrentStudentID())
}

func TestStore_Clear(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.SetCurrentStudentID("student-1"))
	require.NoError(t, store.SetCurrentStudentInfo(&profile{ID: "student-1"}))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.CurrentStudentID())
	var p profile
	assert.False(t, store.CurrentStudentInfo(&p))

	// Clearing an already-empty session is fine.
	require.NoError(t, store.Clear())
}

func TestStore_CorruptFileBehavesLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path)

	assert.Empty(t, store.CurrentStudentID())
	var p profile
	assert.False(t, store.CurrentStudentInfo(&p))
}
