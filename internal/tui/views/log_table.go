package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/render"
	"github.com/matheus3301/notilog/internal/tui/ui"
)

// LogTable shows one variant's filtered records.
type LogTable struct {
	*tview.Table
	theme   *ui.Theme
	variant logs.Variant
	data    render.Table
	query   string
	total   int
}

// NewLogTable creates an empty table for v.
func NewLogTable(theme *ui.Theme, v logs.Variant) *LogTable {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false).
		SetFixed(1, 0)
	table.SetBorder(true)

	lt := &LogTable{
		Table:   table,
		theme:   theme,
		variant: v,
		data:    render.Table{Variant: v, Headers: render.Headers(v), Placeholder: v.EmptyText()},
	}
	table.SetFocusFunc(func() { table.SetBorderColor(lt.theme.BorderFocusColor) })
	table.SetBlurFunc(func() { table.SetBorderColor(lt.theme.BorderColor) })
	lt.ApplyTheme()
	return lt
}

// Name implements Component.
func (lt *LogTable) Name() string { return lt.variant.Label() }

// Init implements Component.
func (lt *LogTable) Init() {}

// Start implements Component.
func (lt *LogTable) Start() {}

// Stop implements Component.
func (lt *LogTable) Stop() {}

// Hints implements Component.
func (lt *LogTable) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Enter", Description: "Details"},
		{Key: "n", Description: "New"},
		{Key: "d", Description: "Delete"},
		{Key: "/", Description: "Filter"},
		{Key: "e", Description: "Export"},
	}
}

// ApplyTheme implements Themed.
func (lt *LogTable) ApplyTheme() {
	lt.SetBackgroundColor(lt.theme.BgColor)
	lt.SetTitleColor(lt.theme.TitleColor)
	if lt.HasFocus() {
		lt.SetBorderColor(lt.theme.BorderFocusColor)
	} else {
		lt.SetBorderColor(lt.theme.BorderColor)
	}
	lt.SetSelectedStyle(tcell.StyleDefault.
		Foreground(lt.theme.TableCursorFg).
		Background(lt.theme.TableCursorBg))
	lt.render()
}

// Variant returns the variant this table shows.
func (lt *LogTable) Variant() logs.Variant { return lt.variant }

// Update replaces the table contents. total is the unfiltered record count.
func (lt *LogTable) Update(t render.Table, query string, total int) {
	lt.data = t
	lt.query = query
	lt.total = total
	lt.render()
}

func (lt *LogTable) render() {
	row, _ := lt.GetSelection()
	lt.Clear()

	for col, h := range lt.data.Headers {
		exp := 0
		if col == 1 || (lt.variant != logs.Email && col == 2) {
			exp = 1
		}
		cell := tview.NewTableCell(" " + h).
			SetSelectable(false).
			SetTextColor(lt.theme.TableHeaderFg).
			SetBackgroundColor(lt.theme.TableHeaderBg).
			SetAttributes(tcell.AttrBold).
			SetExpansion(exp)
		lt.SetCell(0, col, cell)
	}

	if len(lt.data.Rows) == 0 {
		lt.SetCell(1, 0, tview.NewTableCell(" "+lt.data.Placeholder).
			SetSelectable(false).
			SetTextColor(lt.theme.FgColor).
			SetAttributes(tcell.AttrDim))
	}
	for i, r := range lt.data.Rows {
		for col, text := range r.Cells {
			cell := tview.NewTableCell(" " + tview.Escape(sanitizeForTerminal(text))).
				SetTextColor(lt.theme.FgColor)
			switch {
			case col == 0:
				cell.SetAlign(tview.AlignRight).SetTextColor(lt.theme.CounterColor)
			case col == len(r.Cells)-1:
				cell.SetTextColor(lt.theme.FlashErrColor)
			case col == 1 || (lt.variant != logs.Email && col == 2):
				cell.SetExpansion(1).SetMaxWidth(60)
			}
			lt.SetCell(i+1, col, cell)
		}
	}

	if lt.query != "" {
		lt.SetTitle(fmt.Sprintf(" %s (%d/%d) filter: %s ", lt.variant.Label(), len(lt.data.Rows), lt.total, tview.Escape(lt.query)))
	} else {
		lt.SetTitle(fmt.Sprintf(" %s (%d) ", lt.variant.Label(), len(lt.data.Rows)))
	}

	switch {
	case len(lt.data.Rows) == 0:
		lt.Select(0, 0)
	case row < 1:
		lt.Select(1, 0)
	case row > len(lt.data.Rows):
		lt.Select(len(lt.data.Rows), 0)
	default:
		lt.Select(row, 0)
	}
}

// SelectedRow returns the record under the cursor.
func (lt *LogTable) SelectedRow() (render.Row, bool) {
	row, _ := lt.GetSelection()
	idx := row - 1 // account for header
	if idx < 0 || idx >= len(lt.data.Rows) {
		return render.Row{}, false
	}
	return lt.data.Rows[idx], true
}

// Len returns the number of rows shown.
func (lt *LogTable) Len() int { return len(lt.data.Rows) }
