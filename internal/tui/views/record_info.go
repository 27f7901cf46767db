package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"

	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/render"
	"github.com/matheus3301/notilog/internal/tui/ui"
)

// RecordInfo displays every field of one record.
type RecordInfo struct {
	*tview.TextView
	theme *ui.Theme
}

// NewRecordInfo creates a new record info view.
func NewRecordInfo(theme *ui.Theme) *RecordInfo {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetTitle(" Details ")

	ri := &RecordInfo{
		TextView: tv,
		theme:    theme,
	}
	ri.ApplyTheme()
	return ri
}

// Name implements Component.
func (ri *RecordInfo) Name() string { return "Details" }

// Init implements Component.
func (ri *RecordInfo) Init() {}

// Start implements Component.
func (ri *RecordInfo) Start() {}

// Stop implements Component.
func (ri *RecordInfo) Stop() {}

// Hints implements Component.
func (ri *RecordInfo) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
		{Key: "d", Description: "Delete"},
	}
}

// ApplyTheme implements Themed.
func (ri *RecordInfo) ApplyTheme() {
	ri.SetBorderColor(ri.theme.BorderFocusColor)
	ri.SetBackgroundColor(ri.theme.BgColor)
	ri.SetTextColor(ri.theme.FgColor)
	ri.SetTitleColor(ri.theme.TitleColor)
}

// Update renders the details of row.
func (ri *RecordInfo) Update(v logs.Variant, row render.Row) {
	ri.Clear()
	if row.Record == nil {
		return
	}

	fg := colorName(ri.theme.MenuKeyColor)
	ct := colorName(ri.theme.CounterColor)

	var b strings.Builder
	b.WriteString("\n")
	for _, col := range v.Columns() {
		val := row.Record.Field(col)
		if col == "created_at" {
			val = render.FormatTimestamp(val, time.Local) + "  (" + val + ")"
		}
		fmt.Fprintf(&b, " [%s::b]%-14s[-:-:-] [%s]%s[-]\n",
			fg, col+":", ct, tview.Escape(sanitizeForTerminal(val)))
	}
	_, _ = fmt.Fprint(ri, b.String())
	ri.SetTitle(fmt.Sprintf(" %s #%d ", v.Label(), row.Record.RecordID()))
	ri.ScrollToBeginning()
}

func colorName(c interface{ Hex() int32 }) string {
	if h := c.Hex(); h >= 0 {
		return fmt.Sprintf("#%06x", h)
	}
	return "-"
}
