package scan

import (
	"path/filepath"
	"sort"

	"github.com/dirsnap/dirsnap/internal/snapshot"
)

// dirAccumulator tracks one directory during aggregation. The display
// path keeps the casing first seen; lookups go through folded keys.
type dirAccumulator struct {
	path  string
	total int64
}

// Aggregate derives cumulative per-directory totals from a flat file
// list. Each file's size lands on its parent directory, every ancestor
// up to the filesystem root is materialized, and a single sweep from
// the longest paths upward folds each directory's total into its
// parent. The result is pure: no filesystem access, and identical input
// yields identical output, in the order the directories were first
// created.
//
// A directory with no files anywhere beneath it never appears, since
// nothing ever creates an entry for it.
func Aggregate(files []snapshot.FileRecord) []snapshot.DirectoryTotal {
	acc := make(map[string]*dirAccumulator)
	order := make([]string, 0)

	ensure := func(path string) *dirAccumulator {
		key := snapshot.FoldPath(path)

		entry, ok := acc[key]
		if !ok {
			entry = &dirAccumulator{path: path}
			acc[key] = entry
			order = append(order, key)
		}

		return entry
	}

	// Direct parents receive their files' sizes.
	for _, f := range files {
		parent, ok := parentDir(f.Path)
		if !ok {
			continue
		}

		ensure(parent).total += f.Size
	}

	// Materialize the full ancestor chain of every parent seen so far,
	// so the sweep below always finds a parent entry in place.
	parents := make([]string, len(order))
	copy(parents, order)

	for _, key := range parents {
		entry := acc[key]

		for {
			parent, ok := parentDir(entry.path)
			if !ok {
				break
			}

			next, exists := acc[snapshot.FoldPath(parent)]
			if exists {
				// Its own chain was already materialized.
				break
			}

			next = ensure(parent)
			entry = next
		}
	}

	// Fold totals upward, longest keys first. A directory's folded key
	// is always strictly longer than its parent's, so by the time a
	// directory is swept, every descendant has already been folded into
	// it.
	keys := make([]string, len(order))
	copy(keys, order)

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}

		return keys[i] < keys[j]
	})

	for _, key := range keys {
		entry := acc[key]

		parent, ok := parentDir(entry.path)
		if !ok {
			continue
		}

		acc[snapshot.FoldPath(parent)].total += entry.total
	}

	totals := make([]snapshot.DirectoryTotal, 0, len(order))
	for _, key := range order {
		totals = append(totals, snapshot.DirectoryTotal{Path: acc[key].path, Total: acc[key].total})
	}

	return totals
}

// parentDir returns the parent of path, reporting false when path has
// no parent: filesystem roots, the empty string and bare relative
// names that resolve to ".".
func parentDir(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	clean := filepath.Clean(path)

	parent := filepath.Dir(clean)
	if parent == clean {
		return "", false
	}

	return parent, true
}
