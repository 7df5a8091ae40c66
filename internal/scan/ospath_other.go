//go:build !windows

package scan

// osPath converts a path to the form handed to the operating system.
// Only Windows needs a rewrite.
func osPath(path string) string {
	return path
}
