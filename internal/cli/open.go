package cli

import (
	"github.com/spf13/cobra"

	"github.com/dirsnap/dirsnap/internal/open"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Reveal a directory in the platform file manager",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return open.Reveal(args[0])
		},
	}
}
