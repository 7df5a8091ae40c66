package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirsnap/dirsnap/internal/snapshot"
)

func assertSnapshotEqual(t *testing.T, want, got *snapshot.Snapshot) {
	t.Helper()

	assert.Equal(t, want.Root, got.Root)
	assert.True(t, got.ScanTime.Equal(want.ScanTime))
	assert.Equal(t, want.Files, got.Files)
	assert.Equal(t, want.Dirs, got.Dirs)
}

func TestStoreRoundTripMemory(t *testing.T) {
	st := New(memfs.New())
	snap := sampleSnapshot()

	require.NoError(t, st.Save(snap, "data.dirsnap"))

	got, err := st.Load("data.dirsnap")
	require.NoError(t, err)
	assertSnapshotEqual(t, snap, got)
}

func TestStoreRoundTripDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.dirsnap")
	snap := sampleSnapshot()

	require.NoError(t, SaveFile(snap, path))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assertSnapshotEqual(t, snap, got)

	// The artifact on disk is a gzip stream.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(raw), 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, raw[:2])
}

func TestLoadMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.dirsnap"))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)
	assert.Contains(t, perr.Path, "absent.dirsnap")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.dirsnap")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot at all"), 0o644))

	_, err := LoadFile(path)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "load", perr.Op)
}

func TestSaveReplacesExisting(t *testing.T) {
	st := New(memfs.New())

	first := sampleSnapshot()
	require.NoError(t, st.Save(first, "x.dirsnap"))

	second := sampleSnapshot()
	second.Root = "/other"
	second.Files = second.Files[:1]
	require.NoError(t, st.Save(second, "x.dirsnap"))

	got, err := st.Load("x.dirsnap")
	require.NoError(t, err)
	assertSnapshotEqual(t, second, got)
}

// faultFS hands out temporary files that fail after a byte budget,
// standing in for a disk that dies mid-save.
type faultFS struct {
	billy.Filesystem
	budget int
}

func (f *faultFS) TempFile(dir, prefix string) (billy.File, error) {
	file, err := f.Filesystem.TempFile(dir, prefix)
	if err != nil {
		return nil, err
	}

	return &faultFile{File: file, remaining: f.budget}, nil
}

type faultFile struct {
	billy.File
	remaining int
}

func (f *faultFile) Write(p []byte) (int, error) {
	if len(p) > f.remaining {
		return 0, errors.New("disk full")
	}

	f.remaining -= len(p)

	return f.File.Write(p)
}

func TestSaveFailureKeepsPreviousArtifact(t *testing.T) {
	base := memfs.New()
	st := New(base)

	first := sampleSnapshot()
	require.NoError(t, st.Save(first, "x.dirsnap"))

	second := sampleSnapshot()
	second.Root = "/changed"

	failing := New(&faultFS{Filesystem: base, budget: 10})
	err := failing.Save(second, "x.dirsnap")

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "save", perr.Op)

	// The previous artifact is untouched and no temporary file is left
	// behind.
	got, err := st.Load("x.dirsnap")
	require.NoError(t, err)
	assertSnapshotEqual(t, first, got)

	entries, err := base.ReadDir("/")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "x.dirsnap", entries[0].Name())
}

func TestSaveFailureLeavesNothingBehind(t *testing.T) {
	base := memfs.New()

	failing := New(&faultFS{Filesystem: base, budget: 10})
	require.Error(t, failing.Save(sampleSnapshot(), "fresh.dirsnap"))

	// No artifact was ever completed, so a load reports a missing file
	// rather than a corrupt partial one.
	_, err := New(base).Load("fresh.dirsnap")

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	entries, err := base.ReadDir("/")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveCreatesNestedDirectories(t *testing.T) {
	st := New(memfs.New())

	require.NoError(t, st.Save(sampleSnapshot(), filepath.Join("deep", "nested", "x.dirsnap")))

	_, err := st.Load(filepath.Join("deep", "nested", "x.dirsnap"))
	require.NoError(t, err)
}
