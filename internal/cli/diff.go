package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/dirsnap/dirsnap/internal/diff"
	"github.com/dirsnap/dirsnap/internal/store"
)

func newDiffCmd() *cobra.Command {
	var (
		minDelta byteSize
		dir      string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "diff [snapshot|root]",
		Short: "Compare a snapshot against the live tree",
		Long: heredoc.Doc(`
			Rescans the snapshot's root and reports files that were added,
			removed or resized since the snapshot was taken. Small size
			churn can be suppressed with --min-delta.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			report, err := diff.Compare(cmd.Context(), snap, diff.Options{MinDelta: int64(minDelta)})
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}

			return printDiffReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().Var(&minDelta, "min-delta", "Ignore size changes smaller than this (e.g. 1MB)")
	cmd.Flags().StringVar(&dir, "dir", "", "Artifact directory (defaults to $DIRSNAP_DIR, then the user cache)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}
