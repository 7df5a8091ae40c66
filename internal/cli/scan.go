package cli

import (
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/dirsnap/dirsnap/internal/scan"
	"github.com/dirsnap/dirsnap/internal/store"
)

// scanSummary is what the scan command reports once the artifact has
// been written.
type scanSummary struct {
	Root       string        `json:"root"`
	Files      int           `json:"files"`
	Dirs       int           `json:"dirs"`
	TotalBytes int64         `json:"total_bytes"`
	Elapsed    time.Duration `json:"elapsed"`
	Artifact   string        `json:"artifact"`
}

func newScanCmd() *cobra.Command {
	var (
		output string
		dir    string
		asJSON bool
		debug  bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Record a snapshot of a directory tree",
		Long: heredoc.Doc(`
			Walks the tree twice: once to size the work for accurate
			progress reporting, once to record every file. The snapshot is
			written atomically, replacing any previous snapshot of the
			same root.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			progress := newProgressPrinter(asJSON || debug)
			progress.start()

			start := time.Now()

			scanner := &scan.Scanner{Debug: debug}

			snap, err := scanner.Scan(root, progress.hook())

			progress.stop()

			if err != nil {
				return err
			}

			target := output
			if target == "" {
				base, err := artifactDir(dir)
				if err != nil {
					return err
				}

				target = filepath.Join(base, store.DefaultName(snap.Root))
			}

			if err := store.SaveFile(snap, target); err != nil {
				return err
			}

			summary := scanSummary{
				Root:       snap.Root,
				Files:      len(snap.Files),
				Dirs:       len(snap.Dirs),
				TotalBytes: snap.TotalBytes(),
				Elapsed:    time.Since(start).Round(time.Millisecond),
				Artifact:   target,
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), summary)
			}

			return printScanSummary(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the artifact to this exact path")
	cmd.Flags().StringVar(&dir, "dir", "", "Artifact directory (defaults to $DIRSNAP_DIR, then the user cache)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug output")

	return cmd
}
