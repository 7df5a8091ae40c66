// Package diff compares a stored snapshot against the live filesystem.
//
// Unlike the scanner, the comparison has no ordering or progress
// contract to honor, so it walks the tree in parallel with fastwalk and
// reconciles against the snapshot afterwards.
package diff

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/dirsnap/dirsnap/internal/snapshot"
)

// Change is a file present in both the snapshot and the live tree whose
// size moved.
type Change struct {
	// Path is the current file path.
	Path string `json:"path"`
	// OldSize is the size recorded in the snapshot.
	OldSize int64 `json:"old_size"`
	// NewSize is the size on disk now.
	NewSize int64 `json:"new_size"`
}

// Delta returns the size movement, positive for growth.
func (c Change) Delta() int64 {
	return c.NewSize - c.OldSize
}

// Report summarizes how the live tree diverged from a snapshot.
type Report struct {
	// Root is the snapshot root the comparison ran against.
	Root string `json:"root"`
	// Added lists files on disk that the snapshot does not know.
	Added []snapshot.FileRecord `json:"added"`
	// Removed lists snapshot files that no longer exist.
	Removed []snapshot.FileRecord `json:"removed"`
	// Changed lists files whose size moved by at least the configured
	// threshold.
	Changed []Change `json:"changed"`
}

// NetBytes returns the overall byte movement: additions minus removals
// plus size changes.
func (r *Report) NetBytes() int64 {
	var net int64

	for _, f := range r.Added {
		net += f.Size
	}

	for _, f := range r.Removed {
		net -= f.Size
	}

	for _, c := range r.Changed {
		net += c.Delta()
	}

	return net
}

// Options configures a comparison.
type Options struct {
	// MinDelta suppresses size changes smaller than this many bytes.
	// Added and removed files are always reported.
	MinDelta int64
}

// Compare rescans snap's root and reports every divergence. The walk
// can be cancelled through ctx. Files that cannot be read are skipped,
// matching the scanner's policy, but a root that cannot be walked at
// all is an error.
func Compare(ctx context.Context, snap *snapshot.Snapshot, opts Options) (*Report, error) {
	info, err := os.Stat(snap.Root)
	if err != nil {
		return nil, fmt.Errorf("accessing root %q: %w", snap.Root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", snap.Root)
	}

	recorded := make(map[string]snapshot.FileRecord, len(snap.Files))
	for _, f := range snap.Files {
		recorded[snapshot.FoldPath(f.Path)] = f
	}

	var (
		mu      sync.Mutex
		current = make(map[string]snapshot.FileRecord, len(snap.Files))
	)

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	walkErr := fastwalk.Walk(conf, snap.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Silently skip errors
		}

		select {
		case <-ctx.Done():
			return context.Cause(ctx)
		default:
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		record := snapshot.FileRecord{Path: path, Size: fileInfo.Size()}

		mu.Lock()
		current[snapshot.FoldPath(path)] = record
		mu.Unlock()

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walking %q: %w", snap.Root, walkErr)
	}

	report := &Report{Root: snap.Root}

	for key, record := range current {
		old, ok := recorded[key]
		if !ok {
			report.Added = append(report.Added, record)

			continue
		}

		if delta := record.Size - old.Size; delta != 0 && abs(delta) >= max(opts.MinDelta, 1) {
			report.Changed = append(report.Changed, Change{
				Path:    record.Path,
				OldSize: old.Size,
				NewSize: record.Size,
			})
		}
	}

	for key, record := range recorded {
		if _, ok := current[key]; !ok {
			report.Removed = append(report.Removed, record)
		}
	}

	sort.Slice(report.Added, func(i, j int) bool { return report.Added[i].Path < report.Added[j].Path })
	sort.Slice(report.Removed, func(i, j int) bool { return report.Removed[i].Path < report.Removed[j].Path })
	sort.Slice(report.Changed, func(i, j int) bool { return report.Changed[i].Path < report.Changed[j].Path })

	return report, nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}
