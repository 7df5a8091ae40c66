package scan

import "fmt"

// TraversalError reports a root directory that could not be scanned at
// all. Failures below the root never produce it; inaccessible subtrees
// are skipped and the rest of the scan proceeds.
type TraversalError struct {
	// Root is the normalized path the scan was asked to start from.
	Root string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *TraversalError) Error() string {
	return fmt.Sprintf("scanning %q: %v", e.Root, e.Err)
}

// Unwrap returns the underlying error.
func (e *TraversalError) Unwrap() error {
	return e.Err
}
