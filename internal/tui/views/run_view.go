package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jsonbench/internal/storage"
	"jsonbench/internal/tui/components"
	"jsonbench/internal/tui/styles"
)

// RunView shows one stored run: averages as bars plus a per-file table.
type RunView struct {
	Run   *storage.Run
	Table table.Model

	Width  int
	Height int
}

func NewRunView(run *storage.Run) RunView {
	columns := []table.Column{
		{Title: "File", Width: 28},
		{Title: "Library", Width: 16},
		{Title: "Parse ms", Width: 10},
		{Title: "Ser. ms", Width: 10},
		{Title: "MB/s", Width: 10},
		{Title: "p99 ms", Width: 10},
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
		Background(styles.ColorPrimary)
	t.SetStyles(s)

	m := RunView{Run: run, Table: t}
	m.setRows()
	return m
}

func (m *RunView) setRows() {
	if m.Run == nil {
		return
	}
	results := append(m.Run.Results[:0:0], m.Run.Results...)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})

	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		if !r.Measured() {
			continue
		}
		rows = append(rows, table.Row{
			r.File,
			r.Library,
			fmt.Sprintf("%.3f", r.ParseTimeMs),
			fmt.Sprintf("%.3f", r.SerializeTimeMs),
			fmt.Sprintf("%.1f", r.ThroughputMBs),
			fmt.Sprintf("%.3f", r.ParseP99Ms),
		})
	}
	m.Table.SetRows(rows)
}

func (m RunView) Init() tea.Cmd {
	return nil
}

func (m RunView) Update(msg tea.Msg) (RunView, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width = msg.Width
		m.Height = msg.Height
		m.Table.SetWidth(msg.Width - 4)
		m.Table.SetHeight(max(3, msg.Height-m.entries()-12))
	}
	m.Table, cmd = m.Table.Update(msg)
	return m, cmd
}

func (m RunView) entries() int {
	if m.Run == nil {
		return 0
	}
	return len(m.Run.Summary.Entries)
}

func (m RunView) View() string {
	s := strings.Builder{}
	if m.Run == nil {
		s.WriteString(styles.Title.Render("📊 Run"))
		s.WriteString("\n\n")
		s.WriteString(styles.Subtle.Render("Select a run in history."))
		return s.String()
	}

	run := m.Run
	s.WriteString(styles.Title.Render("📊 Run " + run.Timestamp.Format("2006-01-02 15:04:05")))
	s.WriteString("\n\n")

	overview := fmt.Sprintf(
		"Iterations: %d (warmup %d)\nSeed:       %d\nResults:    %d\nFailures:   %d",
		run.Config.Runner.Iterations, run.Config.Runner.WarmupIterations,
		run.Config.Seed, len(run.Results), run.Diagnostics,
	)
	s.WriteString(styles.Box.Render(overview))
	s.WriteString("\n\n")

	s.WriteString(styles.Active.Render("Average Parse Throughput"))
	s.WriteString("\n")
	barWidth := m.Width - 40
	if barWidth < 10 {
		barWidth = 10
	}
	bars := components.NewBars(barWidth, 16, "MB/s")
	for i, e := range run.Summary.Entries {
		bars.Add(e.Library, e.AverageThroughputMBs, lipgloss.NewStyle().Foreground(styles.BarColor(i)))
	}
	s.WriteString(styles.Box.Render(bars.View()))
	s.WriteString("\n")

	if run.Summary.Speedup != nil {
		s.WriteString(fmt.Sprintf("\n %s is %s faster than %s\n",
			run.Summary.Fast, styles.Success.Render(fmt.Sprintf("%.1fx", *run.Summary.Speedup)), run.Summary.Baseline))
	}

	s.WriteString("\n")
	s.WriteString(styles.Box.Render(m.Table.View()))
	s.WriteString("\n\n")
	s.WriteString(styles.Subtle.Render("[Esc] Back  [Ctrl+P] Export"))
	return s.String()
}
