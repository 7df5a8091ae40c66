package scan

import (
	"fmt"
	"path/filepath"

	"github.com/dirsnap/dirsnap/internal/snapshot"
)

// ProgressFunc receives traversal progress. displayPath is the
// directory about to be visited, sanitized for terminal output, and
// percent is the completed share of the tree clamped to [0, 100].
type ProgressFunc func(displayPath string, percent int)

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		//nolint:forbidigo // Debug output to console
		fmt.Printf(format, args...)
	}
}

// walker performs the sequential two-pass traversal. Both passes
// enumerate through the same Lister and skip unreadable directories the
// same way, so the counted total and the visited count line up on a
// quiet filesystem.
type walker struct {
	lister Lister
	log    logger
}

// walkState carries the progress counters through the collecting pass.
// Threading them explicitly keeps the walker free of shared mutable
// state between scans.
type walkState struct {
	// total is the item count established by the counting pass.
	total int
	// visited is the number of entries processed so far.
	visited int
}

// percent returns the completed share of the walk. A zero total yields
// zero, and values are clamped so concurrent filesystem changes between
// the passes can never push the result outside [0, 100].
func (st *walkState) percent() int {
	if st.total <= 0 {
		return 0
	}

	p := st.visited * 100 / st.total
	if p > 100 {
		p = 100
	}

	return p
}

// walk traverses root and returns every file found underneath it.
// Only a root that cannot be listed at all is an error; unreadable
// subtrees are logged and skipped.
func (w *walker) walk(root string, onVisit ProgressFunc) ([]snapshot.FileRecord, error) {
	rootEntries, err := w.lister.List(root)
	if err != nil {
		return nil, &TraversalError{Root: root, Err: err}
	}

	state := &walkState{total: w.countFrom(root, rootEntries)}

	files := make([]snapshot.FileRecord, 0, state.total)
	w.collect(root, state, &files, onVisit)

	return files, nil
}

// countFrom sizes the subtree below dir given its already listed
// entries. Every file and directory counts as one item.
func (w *walker) countFrom(dir string, entries []Entry) int {
	total := len(entries)

	for _, e := range entries {
		if !e.Dir {
			continue
		}

		child := filepath.Join(dir, e.Name)

		children, err := w.lister.List(child)
		if err != nil {
			w.log.printf("[debug]: skipping %s: %v\n", child, err)

			continue
		}

		total += w.countFrom(child, children)
	}

	return total
}

// collect performs the recording pass. It announces dir through
// onVisit, then processes each entry, descending into directories and
// appending files to the record list.
func (w *walker) collect(dir string, state *walkState, files *[]snapshot.FileRecord, onVisit ProgressFunc) {
	if onVisit != nil {
		onVisit(sanitizeDisplay(dir), state.percent())
	}

	entries, err := w.lister.List(dir)
	if err != nil {
		w.log.printf("[debug]: skipping %s: %v\n", dir, err)

		return
	}

	for _, e := range entries {
		state.visited++

		child := filepath.Join(dir, e.Name)

		if e.Dir {
			w.collect(child, state, files, onVisit)

			continue
		}

		*files = append(*files, snapshot.FileRecord{Path: child, Size: e.Size})
	}
}
