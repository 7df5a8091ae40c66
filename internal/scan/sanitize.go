package scan

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// sanitizeDisplay replaces control characters, other unprintable runes
// and invalid UTF-8 bytes with '?'. Progress paths are written straight
// into the terminal, where a stray escape byte in a file name could
// corrupt the display.
func sanitizeDisplay(path string) string {
	clean := true

	for _, r := range path {
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			clean = false

			break
		}
	}

	if clean {
		return path
	}

	var b strings.Builder

	b.Grow(len(path))

	for _, r := range path {
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			b.WriteRune('?')

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
