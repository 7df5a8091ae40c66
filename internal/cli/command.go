// Package cli wires the dirsnap commands.
package cli

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

// New assembles the root command with all subcommands attached.
func New(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "dirsnap",
		Short: "Snapshot directory trees and see where the bytes went",
		Long: heredoc.Doc(`
			dirsnap records a point-in-time inventory of a directory tree:
			every file with its size, plus cumulative totals for every
			directory. Snapshots are compact compressed artifacts that can
			be listed, browsed interactively and compared against the live
			filesystem later.
		`),
		Example: heredoc.Doc(`
			# Snapshot the current directory
			dirsnap scan

			# Snapshot a data drive and inspect the result
			dirsnap scan /data
			dirsnap show /data
			dirsnap browse /data

			# What changed since the snapshot?
			dirsnap diff /data
		`),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadEnvDefaults()
		},
	}

	root.AddCommand(
		newScanCmd(),
		newShowCmd(),
		newDiffCmd(),
		newBrowseCmd(),
		newDrivesCmd(),
		newOpenCmd(),
	)

	return root
}

// Execute runs the CLI and returns the resulting error, if any.
func Execute(version string) error {
	return New(version).Execute()
}
