package filex

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureDir_RelativeToCWD(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureDir("export")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(tmp, "export"))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, want, gotResolved)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := EnsureDir(dir)
	require.NoError(t, err)
	_, err = EnsureDir(dir)
	require.NoError(t, err)
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "export")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureDir(blocker)
	require.Error(t, err)
}

func TestDatedName_UsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 10, 18, 5, 0, 0, 0, loc) // 2026-10-17 19:00 UTC

	require.Equal(t, "products_export_2026-10-17.csv", DatedName("products_export", ".csv", ts))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := WriteFile(dir, "x.csv", []byte("name,stock\n"))
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "name,stock\n", string(b))
}
