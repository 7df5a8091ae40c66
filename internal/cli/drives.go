package cli

import (
	"github.com/spf13/cobra"

	"github.com/dirsnap/dirsnap/internal/drives"
)

func newDrivesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "drives",
		Short: "List mounted filesystems and their capacity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := drives.List()
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), list)
			}

			return printDrives(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as JSON")

	return cmd
}
