package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stephenswat/crofiler/trace"
)

var (
	durationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

// node is one visible row of the expandable activity tree: an
// activity summary plus its depth and whether it has been expanded in
// place to show its children inline.
type node struct {
	info     ActivityInfo
	depth    int
	expanded bool
}

// Model implements tea.Model: a scrollable, expandable activity tree
// backed by a Worker.
type Model struct {
	worker   *Worker
	meta     Metadata
	rows     []node
	cursor   int
	width    int
	height   int
	maxCols  int
	quitting bool
}

// NewModel constructs the initial model from an already-started
// Worker, loading root activities eagerly.
func NewModel(w *Worker) (Model, error) {
	meta, err := w.Metadata()
	if err != nil {
		return Model{}, err
	}
	m := Model{worker: w, meta: meta, maxCols: 120}
	for _, info := range w.RootActivities() {
		m.rows = append(m.rows, node{info: info})
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.maxCols = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "enter", "l":
			m.toggleExpand()
		}
	}
	return m, nil
}

// toggleExpand expands or collapses the row under the cursor,
// splicing its children into (or out of) the flat row list.
func (m *Model) toggleExpand() {
	if m.cursor >= len(m.rows) {
		return
	}
	row := m.rows[m.cursor]
	if !row.info.HasKids {
		return
	}

	if row.expanded {
		end := m.cursor + 1
		for end < len(m.rows) && m.rows[end].depth > row.depth {
			end++
		}
		m.rows = append(m.rows[:m.cursor+1], m.rows[end:]...)
		m.rows[m.cursor].expanded = false
		return
	}

	children := m.worker.DirectChildren(row.info.ID)
	inserted := make([]node, len(children))
	for i, c := range children {
		inserted[i] = node{info: c, depth: row.depth + 1}
	}
	tail := append([]node{}, m.rows[m.cursor+1:]...)
	m.rows = append(m.rows[:m.cursor+1], inserted...)
	m.rows = append(m.rows, tail...)
	m.rows[m.cursor].expanded = true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s — %d root activities, %d total\n\n",
		m.meta.ProcessName, len(m.worker.RootActivities()), sumCounts(m.meta.Stats))

	ids := make([]trace.ActivityID, len(m.rows))
	for i, r := range m.rows {
		ids[i] = r.info.ID
	}
	nameBudget := m.maxCols - 24
	if nameBudget < 8 {
		nameBudget = 8
	}
	names := m.worker.DescribeActivities(ids, nameBudget)

	for i, row := range m.rows {
		indent := strings.Repeat("  ", row.depth)
		marker := " "
		if row.info.HasKids {
			marker = "▸"
			if row.expanded {
				marker = "▾"
			}
		}
		line := fmt.Sprintf("%s%s %s %s", indent, marker, names[i],
			durationStyle.Render(fmtDuration(row.info.Duration)+" / "+fmtDuration(row.info.Self)))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n" + durationStyle.Render("↑/↓ move · enter/l expand · q quit"))
	return b.String()
}

func sumCounts(s trace.GlobalStats) int {
	total := 0
	for _, n := range s.CountByKind {
		total += n
	}
	return total
}
