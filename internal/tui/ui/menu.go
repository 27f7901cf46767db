package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Menu displays keyboard shortcut hints in columns.
type Menu struct {
	*tview.TextView
	theme *Theme
	hints []MenuHint
}

// menuRows is the number of hints per column; it matches the header height.
const menuRows = 5

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBorderPadding(0, 0, 2, 0)

	m := &Menu{
		TextView: tv,
		theme:    theme,
	}
	m.ApplyTheme()
	return m
}

// ApplyTheme implements Themed.
func (m *Menu) ApplyTheme() {
	m.SetBackgroundColor(m.theme.BgColor)
	m.Update(m.hints)
}

// Update renders menu hints column by column, menuRows per column.
func (m *Menu) Update(hints []MenuHint) {
	m.hints = hints
	m.Clear()

	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)
	fgColor := colorName(m.theme.FgColor)

	cols := (len(hints) + menuRows - 1) / menuRows
	for r := 0; r < menuRows; r++ {
		for c := 0; c < cols; c++ {
			i := c*menuRows + r
			if i >= len(hints) {
				continue
			}
			h := hints[i]
			kc := keyColor
			if h.Numeric {
				kc = numColor
			}
			cell := fmt.Sprintf("<%s>", h.Key)
			_, _ = fmt.Fprintf(m, "[%s::b]%-8s[-:-:-][%s]%-14s[-]", kc, cell, fgColor, h.Description)
		}
		_, _ = fmt.Fprintln(m)
	}
}
