package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rivo/tview"

	"github.com/matheus3301/notilog/internal/logs"
)

// StatsData holds the header summary.
type StatsData struct {
	Profile string
	Backend string
	Stats   logs.Stats
	Loaded  bool
}

// StatsPanel displays backend info and per-variant counts in the header.
type StatsPanel struct {
	*tview.TextView
	theme *Theme
	data  StatsData
}

// NewStatsPanel creates a new stats panel.
func NewStatsPanel(theme *Theme) *StatsPanel {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBorderPadding(0, 0, 1, 1)

	sp := &StatsPanel{
		TextView: tv,
		theme:    theme,
	}
	sp.ApplyTheme()
	return sp
}

// ApplyTheme implements Themed.
func (sp *StatsPanel) ApplyTheme() {
	sp.SetBackgroundColor(sp.theme.BgColor)
	sp.render()
}

// Update renders the panel.
func (sp *StatsPanel) Update(data StatsData) {
	sp.data = data
	sp.render()
}

func (sp *StatsPanel) render() {
	sp.Clear()

	fg := colorName(sp.theme.FgColor)
	ct := colorName(sp.theme.CounterColor)

	count := func(n int) string {
		if !sp.data.Loaded {
			return "-"
		}
		return humanize.Comma(int64(n))
	}

	text := fmt.Sprintf(
		"[%s::b]Profile:[-:-:-]  [%s]%s[-]\n"+
			"[%s::b]Backend:[-:-:-]  [%s]%s[-]\n"+
			"[%s::b]Emails:[-:-:-]   [%s]%s[-]\n"+
			"[%s::b]SMS:[-:-:-]      [%s]%s[-]\n"+
			"[%s::b]WhatsApp:[-:-:-] [%s]%s[-]",
		fg, ct, tview.Escape(sp.data.Profile),
		fg, ct, tview.Escape(sp.data.Backend),
		fg, ct, count(sp.data.Stats.Emails),
		fg, ct, count(sp.data.Stats.SMS),
		fg, ct, count(sp.data.Stats.WhatsApp),
	)
	_, _ = fmt.Fprint(sp, text)
}
