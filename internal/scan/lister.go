package scan

import "os"

// Entry describes one immediate child of a directory.
type Entry struct {
	// Name is the base name of the entry.
	Name string
	// Dir reports whether the entry is a directory.
	Dir bool
	// Size is the size in bytes. Zero for directories.
	Size int64
}

// Lister lists the immediate children of a directory. It is the single
// platform capability the walker depends on, which keeps traversal
// logic testable against fabricated trees.
//
// Implementations return directories and regular files only; sockets,
// devices, pipes and symlinks are omitted so both walker passes see an
// identical view of the tree.
type Lister interface {
	List(dir string) ([]Entry, error)
}

// OSLister enumerates directories through the operating system.
type OSLister struct{}

// List returns the children of dir in lexical order. Entries whose
// metadata disappears between the directory read and the stat call are
// dropped, matching the policy of skipping what cannot be read.
func (OSLister) List(dir string) ([]Entry, error) {
	children, err := os.ReadDir(osPath(dir))
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(children))

	for _, child := range children {
		if child.IsDir() {
			entries = append(entries, Entry{Name: child.Name(), Dir: true})

			continue
		}

		if !child.Type().IsRegular() {
			continue
		}

		info, err := child.Info()
		if err != nil {
			continue
		}

		entries = append(entries, Entry{Name: child.Name(), Size: info.Size()})
	}

	return entries, nil
}
