package interact

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdginn/go-ray-optics/optics"
)

var (
	docStyle   = lipgloss.NewStyle().Margin(1, 2)
	tableStyle = lipgloss.NewStyle().MarginLeft(2)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// item is one traced ray of a bundle
type item struct {
	offset float64
	steps  int
	err    error
	table  string
}

func (i item) Title() string {
	return fmt.Sprintf("y0 = %+.4f", i.offset)
}

func (i item) Description() string {
	if i.err != nil {
		return fmt.Sprintf("stopped after %d states", i.steps)
	}
	return fmt.Sprintf("%d states", i.steps)
}

func (i item) FilterValue() string {
	return i.Title()
}

// TraceItems lists the rays of a slope-form bundle
func TraceItems(results []optics.Result[optics.Trace]) []list.Item {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = item{offset: r.Offset, steps: r.Trace.Len(), err: r.Err, table: optics.Table(r.Trace)}
	}
	return items
}

// AngleItems lists the rays of an angle-form bundle
func AngleItems(results []optics.Result[optics.AngleTrace]) []list.Item {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = item{offset: r.Offset, steps: r.Trace.Len(), err: r.Err, table: optics.AngleTable(r.Trace)}
	}
	return items
}

type model struct {
	list list.Model
}

func newModel(title string, items []list.Item) model {
	m := model{list: list.New(items, list.NewDefaultDelegate(), 0, 0)}
	m.list.Title = title
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		// The list gets a third of the width, the table the rest
		m.list.SetSize((msg.Width-h)/3, msg.Height-v)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) selected() string {
	i, ok := m.list.SelectedItem().(item)
	if !ok {
		return ""
	}
	out := i.table
	if i.err != nil {
		out += "\n" + errStyle.Render(i.err.Error())
	}
	return out
}

func (m model) View() string {
	return docStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), tableStyle.Render(m.selected())))
}

// Browse lists the rays of a traced bundle and shows the state table of the selected one
func Browse(title string, items []list.Item) error {
	p := tea.NewProgram(newModel(title, items), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
