package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/tui/ui"
)

const (
	buttonDelete = "Delete"
	buttonCancel = "Cancel"
)

// Confirm is the shared delete confirmation dialog.
type Confirm struct {
	*tview.Modal
	theme     *ui.Theme
	target    logs.DeleteTarget
	busy      bool
	onConfirm func()
	onCancel  func()
}

// NewConfirm creates the dialog.
func NewConfirm(theme *ui.Theme) *Confirm {
	c := &Confirm{
		Modal: tview.NewModal().AddButtons([]string{buttonDelete, buttonCancel}),
		theme: theme,
	}
	c.SetDoneFunc(func(_ int, label string) {
		switch label {
		case buttonDelete:
			if c.onConfirm != nil && !c.busy {
				c.onConfirm()
			}
		default:
			// Esc reports an empty label.
			if c.onCancel != nil {
				c.onCancel()
			}
		}
	})
	c.ApplyTheme()
	return c
}

// Name implements Component.
func (c *Confirm) Name() string { return "Delete" }

// Init implements Component.
func (c *Confirm) Init() {}

// Start implements Component.
func (c *Confirm) Start() { c.SetFocus(1) }

// Stop implements Component.
func (c *Confirm) Stop() {}

// Hints implements Component.
func (c *Confirm) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "←/→", Description: "Choose"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// ApplyTheme implements Themed.
func (c *Confirm) ApplyTheme() {
	c.SetBackgroundColor(c.theme.BgColor)
	c.SetTextColor(c.theme.FgColor)
	c.SetBorderColor(c.theme.FlashErrColor)
	c.SetButtonStyle(tcell.StyleDefault.
		Foreground(c.theme.FgColor).
		Background(c.theme.BgColor))
	c.SetButtonActivatedStyle(tcell.StyleDefault.
		Foreground(c.theme.TableCursorFg).
		Background(c.theme.FlashErrColor))
}

// SetOnConfirm sets the callback for the Delete button.
func (c *Confirm) SetOnConfirm(fn func()) { c.onConfirm = fn }

// SetOnCancel sets the callback for Cancel and Esc.
func (c *Confirm) SetOnCancel(fn func()) { c.onCancel = fn }

// Show prepares the dialog for target.
func (c *Confirm) Show(target logs.DeleteTarget) {
	c.target = target
	c.SetBusy(false)
}

// SetBusy marks the dialog as waiting on the server.
func (c *Confirm) SetBusy(busy bool) {
	c.busy = busy
	text := "Delete this " + c.target.Variant.Label() + " log?\n\n" + c.target.Label
	if busy {
		text = "Deleting...\n\n" + c.target.Label
	}
	c.SetText(text)
}
