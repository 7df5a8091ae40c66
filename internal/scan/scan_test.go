package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScanRealTree(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a", "one.txt"), "abc")
	writeFile(t, filepath.Join(root, "a", "b", "two.bin"), "hello")
	writeFile(t, filepath.Join(root, "three.log"), "1234567")

	var visits int

	snap, err := Scan(root, func(path string, pct int) {
		visits++

		assert.NotEmpty(t, path)
		assert.GreaterOrEqual(t, pct, 0)
		assert.LessOrEqual(t, pct, 100)
	})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(snap.Root))
	assert.WithinDuration(t, time.Now(), snap.ScanTime, time.Minute)

	// One visit per directory: root, a, a/b.
	assert.Equal(t, 3, visits)

	gotFiles := make(map[string]int64, len(snap.Files))
	for _, f := range snap.Files {
		gotFiles[f.Path] = f.Size
	}

	wantFiles := map[string]int64{
		filepath.Join(snap.Root, "a", "one.txt"):      3,
		filepath.Join(snap.Root, "a", "b", "two.bin"): 5,
		filepath.Join(snap.Root, "three.log"):         7,
	}
	assert.Equal(t, wantFiles, gotFiles)

	byPath := totalsByPath(snap.Dirs)
	assert.Equal(t, int64(15), byPath[snap.Root])
	assert.Equal(t, int64(8), byPath[filepath.Join(snap.Root, "a")])
	assert.Equal(t, int64(5), byPath[filepath.Join(snap.Root, "a", "b")])

	// Ancestors of the root are materialized as well.
	assert.Equal(t, int64(15), byPath[filepath.Dir(snap.Root)])

	assert.Equal(t, int64(15), snap.TotalBytes())
}

func TestScanMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	snap, err := Scan(missing, nil)
	assert.Nil(t, snap)

	var terr *TraversalError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, missing, terr.Root)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestScanRootIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	writeFile(t, file, "x")

	snap, err := Scan(file, nil)
	assert.Nil(t, snap)

	var terr *TraversalError
	require.ErrorAs(t, err, &terr)
}

func TestScanEmptyRoot(t *testing.T) {
	root := t.TempDir()

	var percents []int

	snap, err := Scan(root, func(_ string, pct int) {
		percents = append(percents, pct)
	})
	require.NoError(t, err)

	assert.Empty(t, snap.Files)
	assert.Empty(t, snap.Dirs)
	assert.Equal(t, []int{0}, percents)
}

func TestScanUnreadableSubtree(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits work differently on windows")
	}

	if os.Geteuid() == 0 {
		t.Skip("running as root bypasses permission checks")
	}

	root := t.TempDir()

	writeFile(t, filepath.Join(root, "ok", "visible.txt"), "abcd")
	writeFile(t, filepath.Join(root, "locked", "hidden.txt"), "secret")

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0))

	t.Cleanup(func() {
		_ = os.Chmod(locked, 0o755)
	})

	snap, err := Scan(root, nil)
	require.NoError(t, err)

	gotFiles := make(map[string]int64, len(snap.Files))
	for _, f := range snap.Files {
		gotFiles[f.Path] = f.Size
	}

	assert.Equal(t, map[string]int64{filepath.Join(snap.Root, "ok", "visible.txt"): 4}, gotFiles)

	// The unreadable directory contributes nothing, so it is absent
	// from the totals.
	byPath := totalsByPath(snap.Dirs)
	assert.NotContains(t, byPath, filepath.Join(snap.Root, "locked"))
	assert.Equal(t, int64(4), byPath[snap.Root])
}

func TestScanSkipsNonRegularFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs privileges on windows")
	}

	root := t.TempDir()

	writeFile(t, filepath.Join(root, "real.txt"), "abc")
	require.NoError(t, os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")))

	snap, err := Scan(root, nil)
	require.NoError(t, err)

	require.Len(t, snap.Files, 1)
	assert.Equal(t, filepath.Join(snap.Root, "real.txt"), snap.Files[0].Path)
	assert.Equal(t, int64(3), snap.TotalBytes())
}
