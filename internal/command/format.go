package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matheus3301/notilog/internal/render"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	idStyle     = cellStyle.Align(lipgloss.Right)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable renders t without its action column. Cells wider than width
// are truncated; width <= 0 disables truncation.
func printTable(out io.Writer, t render.Table, width int) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(out, dimStyle.Render(t.Placeholder))
		return err
	}

	headers := t.Headers[:len(t.Headers)-1]
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		cells := make([]string, 0, len(headers))
		for _, c := range r.Cells[:len(headers)] {
			if width > 0 {
				c = render.Truncate(c, width)
			} else {
				c = strings.ReplaceAll(c, "\n", " ")
			}
			cells = append(cells, c)
		}
		rows = append(rows, cells)
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return idStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(out, tbl.String())
	return err
}
