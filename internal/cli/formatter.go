package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/dirsnap/dirsnap/internal/diff"
	"github.com/dirsnap/dirsnap/internal/drives"
)

// TabSpacing is the number of spaces between tabwriter columns.
const TabSpacing = 2

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// printScanSummary renders the post-scan summary block.
func printScanSummary(w io.Writer, s scanSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(tw, "Root:\t%s\n", s.Root)
	fmt.Fprintf(tw, "Files:\t%d\n", s.Files)
	fmt.Fprintf(tw, "Directories:\t%d\n", s.Dirs)
	fmt.Fprintf(tw, "Total size:\t%s (%d bytes)\n", iBytes(s.TotalBytes), s.TotalBytes)
	fmt.Fprintf(tw, "Elapsed:\t%v\n", s.Elapsed)
	fmt.Fprintf(tw, "Artifact:\t%s\n", s.Artifact)

	return tw.Flush()
}

// printShowReport renders the top-N sections of a snapshot report.
func printShowReport(w io.Writer, r showReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(tw, "Root:\t%s\n", r.Root)
	fmt.Fprintf(tw, "Scanned:\t%s\n", r.ScanTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(tw, "Files:\t%d\n", r.Files)
	fmt.Fprintf(tw, "Directories:\t%d\n", r.Dirs)
	fmt.Fprintf(tw, "Total size:\t%s (%d bytes)\n", iBytes(r.TotalBytes), r.TotalBytes)

	fmt.Fprintf(tw, "\nTop files:\t\n")

	for i, f := range r.TopFiles {
		fmt.Fprintf(tw, "  %d) '%s'\t%s (%s)\n", i+1, f.Path, iBytes(f.Size), pctOf(f.Size, r.TotalBytes))
	}

	fmt.Fprintf(tw, "\nTop directories:\t\n")

	for i, d := range r.TopDirs {
		fmt.Fprintf(tw, "  %d) '%s'\t%s (%s)\n", i+1, d.Path, iBytes(d.Total), pctOf(d.Total, r.TotalBytes))
	}

	fmt.Fprintf(tw, "\nTop extensions:\t\n")

	for i, e := range r.Extensions {
		ext := e.Ext
		if ext == "" {
			ext = "\"\""
		}

		fmt.Fprintf(tw, "  %d) %s:\t%d files, %s (%s)\n", i+1, ext, e.Count, iBytes(e.Size), pctOf(e.Size, r.TotalBytes))
	}

	return tw.Flush()
}

// printDiffReport renders added, removed and resized files.
func printDiffReport(w io.Writer, r *diff.Report) error {
	if len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0 {
		_, err := fmt.Fprintln(w, "No changes.")

		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(tw, "Root:\t%s\n", r.Root)

	if len(r.Added) > 0 {
		fmt.Fprintf(tw, "\nAdded:\t\n")

		for _, f := range r.Added {
			fmt.Fprintf(tw, "  + '%s'\t%s\n", f.Path, iBytes(f.Size))
		}
	}

	if len(r.Removed) > 0 {
		fmt.Fprintf(tw, "\nRemoved:\t\n")

		for _, f := range r.Removed {
			fmt.Fprintf(tw, "  - '%s'\t%s\n", f.Path, iBytes(f.Size))
		}
	}

	if len(r.Changed) > 0 {
		fmt.Fprintf(tw, "\nChanged:\t\n")

		for _, c := range r.Changed {
			fmt.Fprintf(tw, "  ~ '%s'\t%s -> %s (%s)\n", c.Path, iBytes(c.OldSize), iBytes(c.NewSize), signedBytes(c.Delta()))
		}
	}

	fmt.Fprintf(tw, "\nNet change:\t%s\n", signedBytes(r.NetBytes()))

	return tw.Flush()
}

// printDrives renders one row per mounted filesystem.
func printDrives(w io.Writer, list []drives.Drive) error {
	tw := tabwriter.NewWriter(w, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(tw, "MOUNT\tTYPE\tSIZE\tUSED\tFREE\tUSE%")

	for _, d := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.0f%%\n",
			d.Mount, d.FSType,
			humanize.IBytes(d.Total), humanize.IBytes(d.Used()), humanize.IBytes(d.Free),
			d.UsedPercent())
	}

	return tw.Flush()
}

// iBytes formats a size that is known to be non-negative.
func iBytes(v int64) string {
	if v < 0 {
		v = 0
	}

	return humanize.IBytes(uint64(v))
}

// signedBytes formats a delta with an explicit sign.
func signedBytes(v int64) string {
	switch {
	case v < 0:
		return "-" + humanize.IBytes(uint64(-v))
	case v > 0:
		return "+" + humanize.IBytes(uint64(v))
	default:
		return "0 B"
	}
}

// pctOf formats value's share of total.
func pctOf(value, total int64) string {
	if total <= 0 {
		return "0.0%"
	}

	return fmt.Sprintf("%.1f%%", 100*float64(value)/float64(total))
}
