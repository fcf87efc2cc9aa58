package atssdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemPrefStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewMemPrefStore()

	_, ok := s.Get(PrefDemo)
	require.False(t, ok, "absence means unset, not an error")

	s.Set(PrefDemo, "true")
	v, ok := s.Get(PrefDemo)
	require.True(t, ok)
	require.Equal(t, "true", v)

	s.Delete(PrefDemo)
	_, ok = s.Get(PrefDemo)
	require.False(t, ok)
}

func TestFilePrefStorePersistsAcrossOpens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.json")

	s1, err := NewFilePrefStore(path)
	require.NoError(t, err)
	s1.Set(PrefCurrentOrg, "org-a")
	s1.Set(PrefUser, "u1")

	s2, err := NewFilePrefStore(path)
	require.NoError(t, err)
	v, ok := s2.Get(PrefCurrentOrg)
	require.True(t, ok)
	require.Equal(t, "org-a", v)
}

func TestFilePrefStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	s, err := NewFilePrefStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	_, ok := s.Get(PrefDemo)
	require.False(t, ok)
}

func TestFilePrefStoreCorruptFileIsDiscarded(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFilePrefStore(path)
	require.NoError(t, err)
	_, ok := s.Get(PrefDemo)
	require.False(t, ok)
}
