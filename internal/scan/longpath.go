package scan

import "strings"

// Windows limits classic paths to 260 characters unless they carry the
// extended-length prefix. The conversion lives here as pure string
// functions so it stays testable on every platform; only the Windows
// build actually applies it.
const (
	extendedPrefix    = `\\?\`
	extendedUNCPrefix = `\\?\UNC\`
)

// extendLongPath rewrites an absolute Windows path into its
// extended-length form. Drive paths gain the \\?\ prefix, UNC paths
// become \\?\UNC\ paths. Anything else, including already extended and
// relative paths, is returned unchanged.
func extendLongPath(path string) string {
	switch {
	case strings.HasPrefix(path, extendedPrefix):
		return path
	case isUNCPath(path):
		return extendedUNCPrefix + path[2:]
	case isDrivePath(path):
		return extendedPrefix + path
	default:
		return path
	}
}

// stripLongPath removes the extended-length marker so that paths shown
// to users or written into snapshots never carry it.
func stripLongPath(path string) string {
	switch {
	case strings.HasPrefix(path, extendedUNCPrefix):
		return `\\` + path[len(extendedUNCPrefix):]
	case strings.HasPrefix(path, extendedPrefix):
		return path[len(extendedPrefix):]
	default:
		return path
	}
}

// isDrivePath reports whether path starts with a drive letter and
// colon, like C:\ or c:/.
func isDrivePath(path string) bool {
	if len(path) < 3 {
		return false
	}

	drive := path[0]
	if (drive < 'a' || drive > 'z') && (drive < 'A' || drive > 'Z') {
		return false
	}

	return path[1] == ':' && (path[2] == '\\' || path[2] == '/')
}

// isUNCPath reports whether path is a \\server\share style path that
// is not already in extended form.
func isUNCPath(path string) bool {
	return len(path) > 2 && path[0] == '\\' && path[1] == '\\' && path[2] != '?'
}
