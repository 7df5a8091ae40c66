package scan

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dirsnap/dirsnap/internal/snapshot"
)

// Scanner runs scans. The zero value scans through the operating
// system with debug output disabled.
type Scanner struct {
	// Lister enumerates directories. Nil means OSLister.
	Lister Lister
	// Debug enables diagnostic output for skipped subtrees.
	Debug bool
}

// Scan walks the tree rooted at root and returns its snapshot. The
// walk is synchronous; onProgress, which may be nil, is invoked inline
// before each directory visit. A root that cannot be listed at all
// returns a *TraversalError, while failures deeper in the tree only
// exclude the affected subtree.
func (s *Scanner) Scan(root string, onProgress ProgressFunc) (*snapshot.Snapshot, error) {
	lister := s.Lister
	if lister == nil {
		lister = OSLister{}
	}

	normalized, err := normalizeRoot(root)
	if err != nil {
		return nil, &TraversalError{Root: root, Err: err}
	}

	w := &walker{lister: lister, log: logger{enabled: s.Debug}}

	files, err := w.walk(normalized, onProgress)
	if err != nil {
		return nil, err
	}

	return &snapshot.Snapshot{
		Root:     normalized,
		ScanTime: time.Now(),
		Files:    files,
		Dirs:     Aggregate(files),
	}, nil
}

// Scan walks root with a zero-value Scanner.
func Scan(root string, onProgress ProgressFunc) (*snapshot.Snapshot, error) {
	return (&Scanner{}).Scan(root, onProgress)
}

// normalizeRoot resolves root to a clean absolute path with any
// long-path marker stripped, so every path recorded in the snapshot
// derives from the plain form.
func normalizeRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}

	abs, err := filepath.Abs(stripLongPath(root))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	return abs, nil
}
