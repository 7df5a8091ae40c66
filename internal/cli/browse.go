package cli

import (
	"github.com/spf13/cobra"

	"github.com/dirsnap/dirsnap/internal/browse"
	"github.com/dirsnap/dirsnap/internal/store"
)

func newBrowseCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "browse [snapshot|root]",
		Short: "Explore a snapshot interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			arg := "."
			if len(args) == 1 {
				arg = args[0]
			}

			path, err := resolveArtifact(arg, dir)
			if err != nil {
				return err
			}

			snap, err := store.LoadFile(path)
			if err != nil {
				return err
			}

			return browse.Run(snap)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Artifact directory (defaults to $DIRSNAP_DIR, then the user cache)")

	return cmd
}
