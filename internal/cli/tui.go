package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/waiteperspectives/eml/pkg/diagram"
)

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// pane selects which table the diagram model shows.
type pane int

const (
	paneNodes pane = iota
	paneArrows
)

// =============================================================================
// diagramModel - Interactive layout browser
// =============================================================================

// diagramModel is the bubbletea model behind "inspect --interactive". It
// shows the node or arrow table of a laid out diagram, one window of rows
// at a time, with the selected node's text below.
type diagramModel struct {
	diagram *diagram.Diagram
	nodes   [][]string
	arrows  [][]string
	err     error

	pane   pane
	cursor int
	offset int
	height int
}

func newDiagramModel(d *diagram.Diagram) diagramModel {
	arrows, err := arrowRows(d)
	return diagramModel{
		diagram: d,
		nodes:   nodeRows(d),
		arrows:  arrows,
		err:     err,
		height:  15,
	}
}

func (m diagramModel) rows() [][]string {
	if m.pane == paneArrows {
		return m.arrows
	}
	return m.nodes
}

func (m diagramModel) Init() tea.Cmd {
	return nil
}

func (m diagramModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.pane == paneNodes {
				m.pane = paneArrows
			} else {
				m.pane = paneNodes
			}
			m.cursor, m.offset = 0, 0
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows())-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "home", "g":
			m.cursor, m.offset = 0, 0
		case "end", "G":
			if n := len(m.rows()); n > 0 {
				m.cursor = n - 1
				m.offset = max(0, n-m.height)
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(5, msg.Height-12)
		if m.cursor >= m.offset+m.height {
			m.offset = m.cursor - m.height + 1
		}
	}
	return m, nil
}

func (m diagramModel) View() string {
	if m.err != nil {
		return printableError(m.err)
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Layout"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d×%d", m.diagram.Width, m.diagram.Height)))
	b.WriteString("\n")
	b.WriteString(m.tabs())
	b.WriteString("\n")

	rows := m.rows()
	end := min(m.offset+m.height, len(rows))
	window := rows[m.offset:end]

	if m.pane == paneNodes {
		style := nodeTypeStyle(m.diagram, m.cursor)
		shifted := func(row, col int) lipgloss.Style { return style(row+m.offset, col) }
		b.WriteString(layoutTable(nodeHeaders, markCursor(window, m.cursor-m.offset), shifted).Render())
	} else {
		b.WriteString(layoutTable(arrowHeaders, markCursor(window, m.cursor-m.offset), nil).Render())
	}
	b.WriteString("\n")

	if m.pane == paneNodes && len(rows) > 0 {
		b.WriteString(nodeDetail(m.diagram.Nodes()[m.cursor]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	pos := 0
	if len(rows) > 0 {
		pos = m.cursor + 1
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  ↑/↓ navigate  ⇥ switch  q quit", pos, len(rows))))
	return b.String()
}

func (m diagramModel) tabs() string {
	nodes := fmt.Sprintf("Nodes (%d)", len(m.nodes))
	arrows := fmt.Sprintf("Arrows (%d)", len(m.arrows))
	if m.pane == paneNodes {
		return tabActiveStyle.Render(nodes) + "  " + tabInactiveStyle.Render(arrows)
	}
	return tabInactiveStyle.Render(nodes) + "  " + tabActiveStyle.Render(arrows)
}

// markCursor prefixes the first cell of row sel with a pointer. The input
// rows are not modified.
func markCursor(rows [][]string, sel int) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		row := append([]string(nil), r...)
		if len(row) > 0 {
			if i == sel {
				row[0] = "▸ " + row[0]
			} else {
				row[0] = "  " + row[0]
			}
		}
		out[i] = row
	}
	return out
}

func printableError(err error) string {
	return styleIconError.Render(iconError) + " " + err.Error() + "\n"
}
