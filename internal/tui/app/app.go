package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jsonbench/internal/export"
	"jsonbench/internal/storage"
	"jsonbench/internal/tui/styles"
	"jsonbench/internal/tui/views"
)

type ClearStatusMsg struct{}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(_ time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

type ViewID int

const (
	ViewHistory ViewID = iota
	ViewRun
)

// RunStore is the run history as the browser uses it.
type RunStore interface {
	List() ([]storage.RunSummary, error)
	Get(id string) (*storage.Run, error)
	Delete(id string) error
}

type Model struct {
	Store     RunStore
	ExportDir string

	Width  int
	Height int

	CurrentView ViewID
	MenuItems   []string

	HistoryView views.HistoryView
	RunView     views.RunView

	StatusMsg string
}

func NewModel(store RunStore, exportDir string) Model {
	return Model{
		Store:       store,
		ExportDir:   exportDir,
		CurrentView: ViewHistory,
		MenuItems:   []string{"[1] History", "[2] Run"},
		HistoryView: views.NewHistoryView(store),
		RunView:     views.NewRunView(nil),
	}
}

// Open starts the browser on a specific run.
func (m *Model) Open(id string) error {
	run, err := m.Store.Get(id)
	if err != nil {
		return err
	}
	m.RunView = views.NewRunView(run)
	m.RunView, _ = m.RunView.Update(tea.WindowSizeMsg{Width: m.Width, Height: m.contentHeight()})
	m.CurrentView = ViewRun
	return nil
}

func (m Model) contentHeight() int {
	return m.Height - 6
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case ClearStatusMsg:
		m.StatusMsg = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+q", "q":
			return m, tea.Quit

		case "ctrl+h", "1":
			m.HistoryView.Refresh()
			m.CurrentView = ViewHistory
			return m, nil

		case "2":
			m.CurrentView = ViewRun
			return m, nil

		case "esc":
			if m.CurrentView == ViewRun {
				m.CurrentView = ViewHistory
				return m, nil
			}

		case "ctrl+p":
			m.StatusMsg = m.exportCurrent()
			return m, clearStatusCmd()

		case "ctrl+d":
			if m.CurrentView == ViewHistory {
				m.StatusMsg = m.deleteSelected()
				return m, clearStatusCmd()
			}
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		inner := tea.WindowSizeMsg{Width: m.Width, Height: m.contentHeight()}
		m.HistoryView, _ = m.HistoryView.Update(inner)
		m.RunView, _ = m.RunView.Update(inner)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.CurrentView {
	case ViewHistory:
		m.HistoryView, cmd = m.HistoryView.Update(msg)
		if id := m.HistoryView.SelectedID; id != "" {
			m.HistoryView.SelectedID = ""
			if err := m.Open(id); err != nil {
				m.StatusMsg = fmt.Sprintf("Open failed: %v", err)
				cmds = append(cmds, clearStatusCmd())
			}
		}
	case ViewRun:
		m.RunView, cmd = m.RunView.Update(msg)
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// exportCurrent writes the run in focus as CSV and JSON and returns a
// status line.
func (m Model) exportCurrent() string {
	var run *storage.Run
	switch m.CurrentView {
	case ViewRun:
		run = m.RunView.Run
	case ViewHistory:
		if item := m.HistoryView.Selected(); item != nil {
			r, err := m.Store.Get(item.ID)
			if err != nil {
				return fmt.Sprintf("Export Failed: %v", err)
			}
			run = r
		}
	}
	if run == nil {
		return "Nothing selected to export."
	}

	base, err := ExportRun(run, m.ExportDir)
	if err != nil {
		return fmt.Sprintf("Export Failed: %v", err)
	}
	return fmt.Sprintf("Exported to %s.{csv,json}", base)
}

// deleteSelected removes the run under the history cursor and returns a
// status line.
func (m *Model) deleteSelected() string {
	item := m.HistoryView.Selected()
	if item == nil {
		return "Nothing selected to delete."
	}
	if err := m.Store.Delete(item.ID); err != nil {
		return fmt.Sprintf("Delete Failed: %v", err)
	}
	if m.RunView.Run != nil && m.RunView.Run.ID == item.ID {
		m.RunView = views.NewRunView(nil)
	}
	m.HistoryView.Refresh()
	return fmt.Sprintf("Deleted run %s.", item.ID)
}

// ExportRun writes run to dir as jsonbench_<id>.csv and .json and returns
// the shared path prefix.
func ExportRun(run *storage.Run, dir string) (string, error) {
	base := filepath.Join(dir, "jsonbench_"+run.ID)
	if err := export.ExportCSV(run.Results, base+".csv"); err != nil {
		return "", err
	}
	report := export.Report{
		GeneratedAt: run.Timestamp,
		Config:      run.Config.Runner,
		Summary:     run.Summary,
		Results:     run.Results,
	}
	if err := export.ExportJSON(report, base+".json"); err != nil {
		return "", err
	}
	return base, nil
}

func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	nav := strings.Builder{}
	for i, item := range m.MenuItems {
		if ViewID(i) == m.CurrentView {
			nav.WriteString(styles.TabActive.Render(item))
		} else {
			nav.WriteString(styles.TabBase.Render(item))
		}
	}
	navBar := styles.FooterBase.Width(m.Width).Render(nav.String())

	contentStr := ""
	switch m.CurrentView {
	case ViewHistory:
		contentStr = m.HistoryView.View()
	case ViewRun:
		contentStr = m.RunView.View()
	}
	content := styles.Panel.Width(m.Width - 2).Height(m.contentHeight()).Render(contentStr)

	keys := []string{
		styles.RenderKey("1/2", "View"),
		styles.RenderKey("Enter", "Open"),
		styles.RenderKey("Esc", "Back"),
		styles.RenderKey("Ctrl+P", "Export"),
		styles.RenderKey("Ctrl+D", "Delete"),
		styles.RenderKey("Q", "Quit"),
	}
	footer := styles.FooterBase.Width(m.Width).Render(strings.Join(keys, "   "))

	if m.StatusMsg != "" {
		status := styles.Box.BorderForeground(styles.ColorHighlight).Render(m.StatusMsg)
		return lipgloss.JoinVertical(lipgloss.Left, navBar, content, status, footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, navBar, content, footer)
}
