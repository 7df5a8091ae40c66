package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteSizeSet(t *testing.T) {
	var b byteSize

	require.NoError(t, b.Set("10MB"))
	require.Equal(t, byteSize(10_000_000), b)

	require.NoError(t, b.Set("1MiB"))
	require.Equal(t, byteSize(1048576), b)

	require.NoError(t, b.Set("512"))
	require.Equal(t, byteSize(512), b)

	err := b.Set("bogus")
	require.Error(t, err)
	require.Contains(t, err.Error(), "bogus")
}

func TestByteSizeString(t *testing.T) {
	b := byteSize(1048576)

	require.Equal(t, "1.0 MiB", b.String())
	require.Equal(t, "size", b.Type())
}
