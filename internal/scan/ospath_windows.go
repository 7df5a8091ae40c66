//go:build windows

package scan

// osPath converts a path to the form handed to the operating system.
// Windows gets the extended-length form so directories nested beyond
// the classic 260 character limit stay reachable.
func osPath(path string) string {
	return extendLongPath(path)
}
