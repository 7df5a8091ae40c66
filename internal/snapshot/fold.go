package snapshot

import "strings"

// FoldPath returns the canonical form of path used for comparisons and
// map keys. On platforms whose filesystems ignore case the path is
// lowercased; elsewhere it is returned unchanged. Display paths keep
// their original casing, only keys are folded.
func FoldPath(path string) string {
	if !caseInsensitivePaths {
		return path
	}

	return strings.ToLower(path)
}
