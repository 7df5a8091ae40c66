package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/dirsnap/dirsnap/internal/scan"
)

// statusWidth caps the progress line so it never wraps and breaks the
// in-place rewrite.
const statusWidth = 120

// progressPrinter rewrites a single status line on stderr while a scan
// runs. Updates are throttled so terminal writes never dominate a scan
// of a large tree.
type progressPrinter struct {
	w        io.Writer
	interval time.Duration
	last     time.Time
}

// newProgressPrinter returns a printer when stderr is a terminal and
// the output mode leaves it free. All methods accept a nil receiver,
// so callers never branch on the result.
func newProgressPrinter(quiet bool) *progressPrinter {
	if quiet || !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	return &progressPrinter{w: os.Stderr, interval: 100 * time.Millisecond}
}

// start hides the cursor for in-place updates.
func (p *progressPrinter) start() {
	if p == nil {
		return
	}

	fmt.Fprint(p.w, "\033[?25l")
}

// hook returns the callback handed to the scanner.
func (p *progressPrinter) hook() scan.ProgressFunc {
	if p == nil {
		return nil
	}

	return func(path string, percent int) {
		now := time.Now()
		if now.Sub(p.last) < p.interval {
			return
		}

		p.last = now

		msg := fmt.Sprintf("Scanning %3d%%  %s", percent, path)
		fmt.Fprintf(p.w, "\r\033[2K%s\r", truncateStatus(msg, statusWidth))
	}
}

// stop clears the status line and restores the cursor.
func (p *progressPrinter) stop() {
	if p == nil {
		return
	}

	fmt.Fprint(p.w, "\r\033[2K\r\033[?25h")
}

// truncateStatus trims s to at most max runes.
func truncateStatus(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}
