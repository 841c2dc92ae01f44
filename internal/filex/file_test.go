package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	db := filepath.Join(tmp, "data", "cache", "gamezone.db")

	require.NoError(t, EnsureParentDir(db))

	fi, err := os.Stat(filepath.Dir(db))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	_, err = os.Stat(db)
	require.True(t, os.IsNotExist(err), "the file itself must not be created")
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	db := filepath.Join(t.TempDir(), "data", "gamezone.db")

	require.NoError(t, EnsureParentDir(db))
	require.NoError(t, EnsureParentDir(db))
}

func TestEnsureParentDir_SkipsMemoryAndBareNames(t *testing.T) {
	for _, p := range []string{"", ":memory:", "file:x?mode=memory&cache=shared", "gamezone.db"} {
		require.NoError(t, EnsureParentDir(p), p)
	}
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o660))

	err := EnsureParentDir(filepath.Join(blocker, "gamezone.db"))
	require.Error(t, err, "should fail when a file exists with the same name")
}
