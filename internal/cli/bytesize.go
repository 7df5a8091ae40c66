package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// byteSize is a pflag.Value that accepts human friendly sizes such as
// "10MB" or "1.5GiB".
type byteSize int64

var _ pflag.Value = (*byteSize)(nil)

// String renders the current value in IEC units.
func (b *byteSize) String() string {
	return humanize.IBytes(uint64(*b)) //nolint:gosec // Flag values are never negative
}

// Set parses s with both SI and IEC suffixes.
func (b *byteSize) Set(s string) error {
	v, err := humanize.ParseBytes(s)
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", s, err)
	}

	*b = byteSize(v) //nolint:gosec // Sizes beyond int64 do not occur in practice

	return nil
}

// Type names the value in help output.
func (b *byteSize) Type() string {
	return "size"
}
