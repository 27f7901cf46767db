package views

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/matheus3301/notilog/internal/tui/ui"
)

// HelpView displays key binding reference.
type HelpView struct {
	*tview.TextView
	theme *ui.Theme
}

// NewHelpView creates a new help view.
func NewHelpView(theme *ui.Theme) *HelpView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true)
	tv.SetBorder(true)
	tv.SetTitle(" Help ")

	hv := &HelpView{
		TextView: tv,
		theme:    theme,
	}
	hv.ApplyTheme()
	return hv
}

// Name implements Component.
func (hv *HelpView) Name() string { return "Help" }

// Init implements Component.
func (hv *HelpView) Init() {}

// Start implements Component.
func (hv *HelpView) Start() {}

// Stop implements Component.
func (hv *HelpView) Stop() {}

// Hints implements Component.
func (hv *HelpView) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Esc", Description: "Back"},
	}
}

// ApplyTheme implements Themed.
func (hv *HelpView) ApplyTheme() {
	hv.SetBorderColor(hv.theme.BorderColor)
	hv.SetBackgroundColor(hv.theme.BgColor)
	hv.SetTextColor(hv.theme.FgColor)
	hv.SetTitleColor(hv.theme.TitleColor)
	hv.render()
}

func (hv *HelpView) render() {
	hv.Clear()
	kc := colorName(hv.theme.MenuKeyColor)

	help := fmt.Sprintf(`
  [::b]Global Keys[-:-:-]

  [%s]:[-:-:-]      Command mode       [%s]Esc[-:-:-]    Cancel / Go back
  [%s]?[-:-:-]      Help               [%s]t[-:-:-]      Toggle light/dark theme
  [%s]r[-:-:-]      Reload all logs    [%s]q[-:-:-]      Quit / Back
  [%s]Ctrl-C[-:-:-] Quit immediately

  [::b]Log Tables[-:-:-]

  [%s]Tab[-:-:-]    Next table         [%s]1-3[-:-:-]    Email / SMS / WhatsApp
  [%s]/[-:-:-]      Filter this table  [%s]0[-:-:-]      Clear filter
  [%s]n[-:-:-]      New log            [%s]d[-:-:-]      Delete selected
  [%s]Enter[-:-:-]  Show details       [%s]e[-:-:-]      Export table to CSV

  [::b]Commands (: mode)[-:-:-]

  [%s]:reload[-:-:-]                  Reload all logs
  [%s]:export[-:-:-] [email|sms|whatsapp|all]  Export CSV
  [%s]:theme[-:-:-]                   Toggle theme
  [%s]:help[-:-:-] / [%s]:h[-:-:-]            Show this help
  [%s]:quit[-:-:-] / [%s]:q[-:-:-]            Quit application
`,
		kc, kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc, kc, kc,
		kc, kc, kc, kc, kc, kc, kc,
	)

	_, _ = fmt.Fprint(hv, help)
}
