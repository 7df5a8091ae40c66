package open

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealCommandTargetsPath(t *testing.T) {
	name, args := revealCommand("/some/dir")

	assert.NotEmpty(t, name)
	require.NotEmpty(t, args)
	assert.Equal(t, "/some/dir", args[len(args)-1])
}

func TestRevealMissingViewer(t *testing.T) {
	t.Setenv("PATH", "")

	err := Reveal(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}
