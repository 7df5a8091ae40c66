package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/dirsnap/dirsnap/internal/store"
)

// envDir names the environment variable that overrides where snapshot
// artifacts are kept.
const envDir = "DIRSNAP_DIR"

// loadEnvDefaults reads optional defaults from the user's config file.
// Variables already present in the environment keep their values.
func loadEnvDefaults() error {
	config, err := os.UserConfigDir()
	if err != nil {
		return nil //nolint:nilerr // No config dir means no defaults to load
	}

	path := filepath.Join(config, "dirsnap", "config.env")

	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	return nil
}

// artifactDir resolves where artifacts live: an explicit flag wins,
// then DIRSNAP_DIR, then the user cache directory.
func artifactDir(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if dir := os.Getenv(envDir); dir != "" {
		return dir, nil
	}

	return store.DefaultDir()
}

// resolveArtifact maps a command argument to an artifact path. An
// existing regular file is used as is; anything else is treated as a
// scan root whose default artifact lives in the artifact directory.
func resolveArtifact(arg, dirFlag string) (string, error) {
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		return arg, nil
	}

	root, err := filepath.Abs(arg)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", arg, err)
	}

	dir, err := artifactDir(dirFlag)
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, store.DefaultName(root)), nil
}
