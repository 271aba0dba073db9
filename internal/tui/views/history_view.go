package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jsonbench/internal/storage"
	"jsonbench/internal/tui/styles"
)

// RunLister is the part of storage.Store the history view reads.
type RunLister interface {
	List() ([]storage.RunSummary, error)
}

type HistoryView struct {
	Store RunLister
	Table table.Model

	items   []storage.RunSummary
	loadErr error

	SelectedID string // Output for parent to grab

	Width  int
	Height int
}

func NewHistoryView(store RunLister) HistoryView {
	columns := []table.Column{
		{Title: "Time", Width: 20},
		{Title: "Files", Width: 7},
		{Title: "Libs", Width: 6},
		{Title: "Fastest", Width: 16},
		{Title: "MB/s", Width: 10},
		{Title: "Speedup", Width: 9},
		{Title: "ID", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.ColorPrimary)

	s.Selected = s.Selected.
		Foreground(styles.ColorBg).
		Background(styles.ColorPrimary).
		Bold(true)

	t.SetStyles(s)

	m := HistoryView{
		Store: store,
		Table: t,
	}
	m.Refresh()
	return m
}

// Refresh reloads the run list, newest first.
func (m *HistoryView) Refresh() {
	if m.Store == nil {
		return
	}

	m.items, m.loadErr = m.Store.List()
	rows := make([]table.Row, len(m.items))
	for i, item := range m.items {
		speedup := "-"
		if item.Speedup != nil {
			speedup = fmt.Sprintf("%.1fx", *item.Speedup)
		}
		rows[i] = table.Row{
			item.Timestamp.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d", item.Files),
			fmt.Sprintf("%d", item.Libraries),
			item.Top,
			fmt.Sprintf("%.1f", item.TopMBs),
			speedup,
			item.ID,
		}
	}
	m.Table.SetRows(rows)
	if n := len(rows); n > 0 && m.Table.Cursor() >= n {
		m.Table.SetCursor(n - 1)
	}
}

func (m HistoryView) Init() tea.Cmd {
	return nil
}

func (m HistoryView) Update(msg tea.Msg) (HistoryView, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Table.SetWidth(msg.Width - 4)
		m.Table.SetHeight(msg.Height - 6)

	case tea.KeyMsg:
		if msg.String() == "enter" {
			if item := m.Selected(); item != nil {
				m.SelectedID = item.ID
				return m, nil
			}
		}
	}

	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m HistoryView) View() string {
	s := strings.Builder{}
	s.WriteString(styles.Title.Render("📜 Past Runs"))
	s.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		s.WriteString(styles.Error.Render(fmt.Sprintf("Failed to read history: %v", m.loadErr)))
	case len(m.Table.Rows()) == 0:
		s.WriteString(styles.Subtle.Render("No history found.\nRun `jsonbench bench` to record a run."))
	default:
		s.WriteString(styles.Box.Render(m.Table.View()))
	}
	s.WriteString("\n\n")
	s.WriteString(styles.Subtle.Render("[Enter] Open  [Ctrl+P] Export Selected  [Ctrl+D] Delete"))
	return s.String()
}

// Selected returns the run under the cursor, or nil.
func (m HistoryView) Selected() *storage.RunSummary {
	idx := m.Table.Cursor()
	if idx >= 0 && idx < len(m.items) {
		item := m.items[idx]
		return &item
	}
	return nil
}
