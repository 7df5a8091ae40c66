// Package store persists snapshots as compressed binary artifacts and
// loads them back.
package store

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/dirsnap/dirsnap/internal/snapshot"
)

// PersistenceError reports a failed snapshot save or load.
type PersistenceError struct {
	// Op is "save" or "load".
	Op string
	// Path is the artifact path as the caller supplied it.
	Path string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s snapshot %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Store reads and writes snapshot artifacts on a billy filesystem.
// Artifact names are interpreted relative to the filesystem root, which
// makes the store trivial to exercise against an in-memory filesystem.
type Store struct {
	fs billy.Filesystem
}

// New returns a Store backed by fs.
func New(fs billy.Filesystem) *Store {
	return &Store{fs: fs}
}

// Save writes snap to name atomically. The encoded artifact goes to a
// temporary sibling first; only after the temporary file is complete is
// any existing artifact deleted and the temporary renamed into place.
// A failure at any earlier point leaves the previous artifact intact.
func (s *Store) Save(snap *snapshot.Snapshot, name string) error {
	fail := func(err error) error {
		return &PersistenceError{Op: "save", Path: name, Err: err}
	}

	dir := filepath.Dir(name)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fail(fmt.Errorf("creating artifact directory: %w", err))
		}
	}

	tmpDir := dir
	if tmpDir == "." {
		tmpDir = ""
	}

	tmp, err := s.fs.TempFile(tmpDir, filepath.Base(name)+".tmp")
	if err != nil {
		return fail(fmt.Errorf("creating temporary file: %w", err))
	}

	tmpName := tmp.Name()

	if err := writeSnapshot(tmp, snap); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)

		return fail(err)
	}

	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)

		return fail(fmt.Errorf("closing temporary file: %w", err))
	}

	// Rename does not replace an existing destination everywhere, so an
	// existing artifact is deleted first.
	if _, err := s.fs.Stat(name); err == nil {
		if err := s.fs.Remove(name); err != nil {
			s.fs.Remove(tmpName)

			return fail(fmt.Errorf("removing previous artifact: %w", err))
		}
	} else if !os.IsNotExist(err) {
		s.fs.Remove(tmpName)

		return fail(fmt.Errorf("checking previous artifact: %w", err))
	}

	if err := s.fs.Rename(tmpName, name); err != nil {
		s.fs.Remove(tmpName)

		return fail(fmt.Errorf("renaming temporary file: %w", err))
	}

	return nil
}

// Load reads the snapshot stored at name. There is no partial recovery:
// any decode failure rejects the whole artifact.
func (s *Store) Load(name string) (*snapshot.Snapshot, error) {
	f, err := s.fs.Open(name)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: name, Err: err}
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: name, Err: fmt.Errorf("opening compressed stream: %w", err)}
	}
	defer gz.Close()

	snap, err := decodeSnapshot(gz)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: name, Err: err}
	}

	return snap, nil
}

// writeSnapshot encodes snap through a gzip stream into w.
func writeSnapshot(w io.Writer, snap *snapshot.Snapshot) error {
	gz := gzip.NewWriter(w)

	if err := encodeSnapshot(gz, snap); err != nil {
		gz.Close()

		return err
	}

	if err := gz.Close(); err != nil {
		return fmt.Errorf("flushing compressed stream: %w", err)
	}

	return nil
}

// SaveFile writes snap to path on the host filesystem, creating parent
// directories as needed.
func SaveFile(snap *snapshot.Snapshot, path string) error {
	dir, base := hostSplit(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}

	return rewritePath(New(osfs.New(dir)).Save(snap, base), path)
}

// LoadFile reads a snapshot from path on the host filesystem.
func LoadFile(path string) (*snapshot.Snapshot, error) {
	dir, base := hostSplit(path)

	snap, err := New(osfs.New(dir)).Load(base)
	if err != nil {
		return nil, rewritePath(err, path)
	}

	return snap, nil
}

// hostSplit separates path into the directory a store is rooted at and
// the artifact name within it.
func hostSplit(path string) (string, string) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	return dir, base
}

// rewritePath restores the caller's full path in errors produced by a
// store rooted below it.
func rewritePath(err error, path string) error {
	if err == nil {
		return nil
	}

	var perr *PersistenceError
	if errors.As(err, &perr) {
		return &PersistenceError{Op: perr.Op, Path: path, Err: perr.Err}
	}

	return err
}
