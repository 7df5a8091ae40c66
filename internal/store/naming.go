package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/dirsnap/dirsnap/internal/snapshot"
)

// Ext is the artifact file extension.
const Ext = ".dirsnap"

// DefaultName derives the artifact file name for a scan root. The name
// leads with the root's base name for readability and appends a hash of
// the whole normalized path, so distinct roots never share a file and
// rescanning a root overwrites its previous artifact.
func DefaultName(root string) string {
	clean := filepath.Clean(root)
	sum := xxhash.Sum64String(snapshot.FoldPath(filepath.ToSlash(clean)))

	return fmt.Sprintf("%s-%016x%s", sanitizeBase(filepath.Base(clean)), sum, Ext)
}

// DefaultDir returns where artifacts land when no explicit location is
// given: a dirsnap directory under the user cache directory.
func DefaultDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving user cache directory: %w", err)
	}

	return filepath.Join(cache, "dirsnap"), nil
}

// sanitizeBase keeps letters, digits, dots, dashes and underscores and
// maps everything else to a dash. Roots like "/" or "C:\" have no
// usable base name and become "root".
func sanitizeBase(base string) string {
	var b strings.Builder

	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	cleaned := strings.Trim(b.String(), "-.")
	if cleaned == "" {
		return "root"
	}

	return cleaned
}
