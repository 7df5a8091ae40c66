// Package browse is an interactive terminal viewer for snapshots: the
// largest files and directories as two switchable lists, with the
// selection openable in the platform file manager.
package browse

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dirsnap/dirsnap/internal/open"
	"github.com/dirsnap/dirsnap/internal/snapshot"
)

type tabID int

const (
	tabFiles tabID = iota
	tabDirs
)

// Model drives the snapshot browser.
type Model struct {
	snap    *snapshot.Snapshot
	files   []snapshot.FileRecord
	dirs    []snapshot.DirectoryTotal
	keys    KeyMap
	tab     tabID
	cursor  int
	viewTop int
	width   int
	height  int
	status  string

	// reveal is swappable so tests never spawn a file manager.
	reveal func(string) error
}

// NewModel builds a browser over snap with both lists sorted largest
// first.
func NewModel(snap *snapshot.Snapshot) Model {
	return Model{
		snap:   snap,
		files:  snap.TopFiles(len(snap.Files)),
		dirs:   snap.TopDirs(len(snap.Dirs)),
		keys:   DefaultKeyMap(),
		width:  100,
		height: 30,
		status: "tab switches between files and directories",
		reveal: open.Reveal,
	}
}

func (model Model) Init() tea.Cmd {
	return nil
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		model.ensureCursorVisible()

		return model, nil
	case tea.KeyMsg:
		return model.handleKey(typed)
	}

	return model, nil
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(msg, model.keys.Tab):
		if model.tab == tabFiles {
			model.tab = tabDirs
		} else {
			model.tab = tabFiles
		}

		model.cursor = 0
		model.viewTop = 0
	case key.Matches(msg, model.keys.Up):
		model.cursor--
		model.ensureCursorVisible()
	case key.Matches(msg, model.keys.Down):
		model.cursor++
		model.ensureCursorVisible()
	case key.Matches(msg, model.keys.PageUp):
		model.cursor -= model.listHeight()
		model.ensureCursorVisible()
	case key.Matches(msg, model.keys.PageDown):
		model.cursor += model.listHeight()
		model.ensureCursorVisible()
	case key.Matches(msg, model.keys.Home):
		model.cursor = 0
		model.ensureCursorVisible()
	case key.Matches(msg, model.keys.End):
		model.cursor = model.rowCount() - 1
		model.ensureCursorVisible()
	case key.Matches(msg, model.keys.Open):
		model.status = model.openSelection()
	}

	return model, nil
}

// rowCount returns the length of the active list.
func (model Model) rowCount() int {
	if model.tab == tabFiles {
		return len(model.files)
	}

	return len(model.dirs)
}

// listHeight is the number of rows that fit between header and footer.
func (model Model) listHeight() int {
	height := model.height - chromeLines
	if height < 1 {
		height = 1
	}

	return height
}

func (model *Model) ensureCursorVisible() {
	rows := model.rowCount()
	if rows == 0 {
		model.cursor = 0
		model.viewTop = 0

		return
	}

	if model.cursor >= rows {
		model.cursor = rows - 1
	}

	if model.cursor < 0 {
		model.cursor = 0
	}

	listHeight := model.listHeight()

	if model.cursor < model.viewTop {
		model.viewTop = model.cursor
	}

	if model.cursor >= model.viewTop+listHeight {
		model.viewTop = model.cursor - listHeight + 1
	}

	if model.viewTop < 0 {
		model.viewTop = 0
	}
}

// selectedPath returns what Open should reveal: the directory itself on
// the directories tab, the containing directory on the files tab.
func (model Model) selectedPath() string {
	if model.rowCount() == 0 {
		return ""
	}

	if model.tab == tabFiles {
		return filepath.Dir(model.files[model.cursor].Path)
	}

	return model.dirs[model.cursor].Path
}

func (model *Model) openSelection() string {
	target := model.selectedPath()
	if target == "" {
		return "nothing to open"
	}

	if err := model.reveal(target); err != nil {
		return fmt.Sprintf("open failed: %v", err)
	}

	return fmt.Sprintf("opened %s", target)
}

// Run shows the browser and blocks until the user quits.
func Run(snap *snapshot.Snapshot) error {
	program := tea.NewProgram(NewModel(snap), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}

	return nil
}
