package cli

import (
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/dirsnap/dirsnap/internal/snapshot"
	"github.com/dirsnap/dirsnap/internal/store"
)

// showReport is the printable digest of a snapshot.
type showReport struct {
	Root       string                    `json:"root"`
	ScanTime   time.Time                 `json:"scan_time"`
	Files      int                       `json:"files"`
	Dirs       int                       `json:"dirs"`
	TotalBytes int64                     `json:"total_bytes"`
	TopFiles   []snapshot.FileRecord     `json:"top_files"`
	TopDirs    []snapshot.DirectoryTotal `json:"top_dirs"`
	Extensions []snapshot.ExtensionStat  `json:"extensions"`
}

// buildReport digests snap down to its top entries per section.
func buildReport(snap *snapshot.Snapshot, topN int) showReport {
	exts := snap.ExtensionStats()
	if topN >= 0 && len(exts) > topN {
		exts = exts[:topN]
	}

	return showReport{
		Root:       snap.Root,
		ScanTime:   snap.ScanTime,
		Files:      len(snap.Files),
		Dirs:       len(snap.Dirs),
		TotalBytes: snap.TotalBytes(),
		TopFiles:   snap.TopFiles(topN),
		TopDirs:    snap.TopDirs(topN),
		Extensions: exts,
	}
}

func newShowCmd() *cobra.Command {
	var (
		topN   int
		dir    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "show [snapshot|root]",
		Short: "Print what a snapshot recorded",
		Long: heredoc.Doc(`
			The argument is either a snapshot artifact or a previously
			scanned root; for a root, the matching artifact is looked up
			in the artifact directory.
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

			report := buildReport(snap, topN)

			if asJSON {
				return printJSON(cmd.OutOrStdout(), report)
			}

			return printShowReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "t", 10, "Number of entries per section")
	cmd.Flags().StringVar(&dir, "dir", "", "Artifact directory (defaults to $DIRSNAP_DIR, then the user cache)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}
