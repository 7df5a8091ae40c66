package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// chromeLines is the header and footer overhead around the list: title,
// tab line, column gap, status and key help.
const chromeLines = 5

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

func (model Model) View() string {
	var b strings.Builder

	b.WriteString(model.renderHeader())
	b.WriteString("\n")
	b.WriteString(model.renderRows())
	b.WriteString(model.renderFooter())

	return b.String()
}

func (model Model) renderHeader() string {
	title := fmt.Sprintf("dirsnap  %s  %s in %d files  scanned %s",
		model.snap.Root,
		humanize.IBytes(uint64(model.snap.TotalBytes())),
		len(model.snap.Files),
		model.snap.ScanTime.Format("2006-01-02 15:04"),
	)

	filesTab := fmt.Sprintf("Files (%d)", len(model.files))
	dirsTab := fmt.Sprintf("Directories (%d)", len(model.dirs))

	if model.tab == tabFiles {
		filesTab = activeTabStyle.Render(filesTab)
		dirsTab = mutedStyle.Render(dirsTab)
	} else {
		filesTab = mutedStyle.Render(filesTab)
		dirsTab = activeTabStyle.Render(dirsTab)
	}

	return titleStyle.Render(title) + "\n" + filesTab + "   " + dirsTab + "\n"
}

func (model Model) renderRows() string {
	rows := model.rowCount()
	if rows == 0 {
		return mutedStyle.Render("  nothing recorded") + "\n"
	}

	var b strings.Builder

	end := model.viewTop + model.listHeight()
	if end > rows {
		end = rows
	}

	for i := model.viewTop; i < end; i++ {
		line := fmt.Sprintf("%10s  %s", humanize.IBytes(uint64(model.rowSize(i))), model.rowPath(i))
		line = truncateLine(line, model.width)

		if i == model.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (model Model) renderFooter() string {
	help := "↑/↓ move  pgup/pgdn page  g/G ends  tab switch  enter open  q quit"

	return mutedStyle.Render(truncateLine(model.status, model.width)) + "\n" +
		mutedStyle.Render(truncateLine(help, model.width))
}

func (model Model) rowPath(i int) string {
	if model.tab == tabFiles {
		return model.files[i].Path
	}

	return model.dirs[i].Path
}

func (model Model) rowSize(i int) int64 {
	if model.tab == tabFiles {
		return model.files[i].Size
	}

	return model.dirs[i].Total
}

// truncateLine trims line to width runes. Long lines keep their head,
// where the size column sits, and the tail of the path, where the name
// is, with an ellipsis marking the cut.
func truncateLine(line string, width int) string {
	if width <= 0 {
		return ""
	}

	runes := []rune(line)
	if len(runes) <= width {
		return line
	}

	if width <= 14 {
		return string(runes[:width-1]) + "…"
	}

	return string(runes[:12]) + "…" + string(runes[len(runes)-(width-13):])
}
