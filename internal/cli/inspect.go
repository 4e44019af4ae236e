package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/waiteperspectives/eml/pkg/diagram"
	"github.com/waiteperspectives/eml/pkg/pipeline"
)

var (
	nodeHeaders  = []string{"ID", "Type", "X", "Y", "Width", "Height", "Lines"}
	arrowHeaders = []string{"From", "To", "Route", "Control"}
)

// inspectCommand creates the inspect command, which prints the computed
// layout of a document.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect [infile|-]",
		Short: "Show node positions and arrow routes",
		Example: `  eml inspect model.yaml
  eml demo | eml inspect -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := stdio
			if len(args) > 0 {
				in = args[0]
			}
			source, err := readSource(cmd.InOrStdin(), in)
			if err != nil {
				return err
			}
			d, err := layoutSource(source)
			if err != nil {
				return err
			}

			if interactive {
				_, err := tea.NewProgram(newDiagramModel(d), tea.WithAltScreen()).Run()
				return err
			}
			return printLayout(cmd.OutOrStdout(), d)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the layout in a scrollable view")
	return cmd
}

// layoutSource parses and lays out a YAML document.
func layoutSource(source []byte) (*diagram.Diagram, error) {
	doc, err := pipeline.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	d, err := pipeline.Layout(doc)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return d, nil
}

// printLayout writes the canvas size, the node table and the arrow table.
func printLayout(w io.Writer, d *diagram.Diagram) error {
	arrows, err := arrowRows(d)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, StyleTitle.Render("Canvas")+" "+StyleValue.Render(fmt.Sprintf("%d×%d", d.Width, d.Height)))
	fmt.Fprintln(w, layoutTable(nodeHeaders, nodeRows(d), nodeTypeStyle(d, -1)).Render())
	if len(arrows) > 0 {
		fmt.Fprintln(w, layoutTable(arrowHeaders, arrows, nil).Render())
	}
	return nil
}

// layoutTable builds a bordered table. rowStyle, if set, styles body rows.
func layoutTable(headers []string, rows [][]string, rowStyle func(row, col int) lipgloss.Style) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if rowStyle != nil {
				return rowStyle(row, col).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// nodeTypeStyle colors the type column by node type and bolds the row at
// selected.
func nodeTypeStyle(d *diagram.Diagram, selected int) func(row, col int) lipgloss.Style {
	nodes := d.Nodes()
	return func(row, col int) lipgloss.Style {
		s := lipgloss.NewStyle()
		if row < 0 || row >= len(nodes) {
			return s
		}
		if col == 1 {
			s = s.Foreground(nodeColors[nodes[row].Type.String()])
		}
		if row == selected {
			s = s.Bold(true)
		}
		return s
	}
}

func nodeRows(d *diagram.Diagram) [][]string {
	nodes := d.Nodes()
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		rows = append(rows, []string{
			n.ID,
			n.Type.String(),
			strconv.Itoa(n.Origin.X),
			strconv.Itoa(n.Origin.Y),
			strconv.Itoa(n.Width),
			strconv.Itoa(n.Height),
			strconv.Itoa(len(n.Lines())),
		})
	}
	return rows
}

func arrowRows(d *diagram.Diagram) ([][]string, error) {
	nodes := d.Nodes()
	rows := make([][]string, 0, d.ArrowCount())
	for _, a := range d.Arrows() {
		cp, err := a.ControlPoint(nodes)
		if err != nil {
			return nil, err
		}
		r := a.Route()
		rows = append(rows, []string{
			nodes[a.Begin].ID,
			nodes[a.End].ID,
			r.Begin.String() + " → " + r.End.String(),
			formatVec(cp.X, cp.Y),
		})
	}
	return rows, nil
}

func formatVec(x, y float64) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return "(" + f(x) + ", " + f(y) + ")"
}

// nodeDetail renders the body lines of a node for the detail pane.
func nodeDetail(n diagram.Node) string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(n.ID))
	b.WriteString(" ")
	b.WriteString(lipgloss.NewStyle().Foreground(nodeColors[n.Type.String()]).Render(n.Type.String()))
	for _, line := range n.Lines() {
		if line == "" {
			continue
		}
		b.WriteString("\n  ")
		b.WriteString(StyleDim.Render(line))
	}
	return b.String()
}
