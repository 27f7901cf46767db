package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/matheus3301/notilog/internal/tui/ui"
)

// StatusBar displays the profile, backend and load state.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	profile string
	backend string
	loading bool
	updated time.Time
	now     func() time.Time
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	sb := &StatusBar{TextView: tv, theme: theme, now: time.Now}
	sb.ApplyTheme()
	return sb
}

// ApplyTheme implements Themed.
func (sb *StatusBar) ApplyTheme() {
	sb.SetBackgroundColor(sb.theme.TableHeaderBg)
	sb.SetTextColor(sb.theme.TableHeaderFg)
	sb.render()
}

// SetProfile updates the profile and backend display.
func (sb *StatusBar) SetProfile(profile, backend string) {
	sb.profile = profile
	sb.backend = backend
	sb.render()
}

// SetLoading updates the load indicator.
func (sb *StatusBar) SetLoading(loading bool) {
	sb.loading = loading
	sb.render()
}

// SetUpdated records the time of the last successful load.
func (sb *StatusBar) SetUpdated(t time.Time) {
	sb.updated = t
	sb.loading = false
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	icon := " "
	if sb.loading {
		icon = fmt.Sprintf("[%s]~[-]", colorName(sb.theme.FlashInfoColor))
	}
	updated := "never"
	if !sb.updated.IsZero() {
		updated = sb.updated.Format("15:04:05")
	}

	line := fmt.Sprintf(" [::b]%s[-:-:-] | %s %s | %s theme | updated %s | %s",
		tview.Escape(sb.profile), tview.Escape(sb.backend), icon,
		sb.theme.Mode, updated, sb.now().Format("15:04"))
	_, _ = fmt.Fprint(sb, line)
}
