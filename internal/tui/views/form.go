package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/tui/ui"
)

// Form labels.
const (
	labelEmailTo = "Email to"
	labelMobile  = "Mobile"
	labelMessage = "Message"
)

// Form is the creation dialog for one variant.
type Form struct {
	*tview.Form
	theme    *ui.Theme
	variant  logs.Variant
	draft    logs.Draft
	busy     bool
	silent   bool
	onChange func(logs.Draft)
	onSubmit func()
	onCancel func()
}

// NewForm creates the form for v.
func NewForm(theme *ui.Theme, v logs.Variant) *Form {
	f := &Form{
		Form:    tview.NewForm(),
		theme:   theme,
		variant: v,
	}

	if v == logs.Email {
		f.AddInputField(labelEmailTo, "", 40, nil, func(text string) {
			f.draft.EmailTo = text
			f.changed()
		})
	} else {
		f.AddInputField(labelMobile, "", 24, nil, func(text string) {
			f.draft.MobileNumber = text
			f.changed()
		})
		f.AddTextArea(labelMessage, "", 40, 4, 0, func(text string) {
			f.draft.Message = text
			f.changed()
		})
	}
	f.AddButton("Save", func() {
		if f.onSubmit != nil && !f.busy {
			f.onSubmit()
		}
	})
	f.AddButton("Cancel", func() {
		if f.onCancel != nil {
			f.onCancel()
		}
	})
	f.SetCancelFunc(func() {
		if f.onCancel != nil {
			f.onCancel()
		}
	})
	f.SetBorder(true)
	f.SetButtonsAlign(tview.AlignRight)
	f.ApplyTheme()
	f.SetBusy(false)
	return f
}

// Name implements Component.
func (f *Form) Name() string { return "New " + f.variant.Label() }

// Init implements Component.
func (f *Form) Init() {}

// Start implements Component.
func (f *Form) Start() { f.SetFocus(0) }

// Stop implements Component.
func (f *Form) Stop() {}

// Hints implements Component.
func (f *Form) Hints() []ui.MenuHint {
	return []ui.MenuHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Press button"},
		{Key: "Esc", Description: "Cancel"},
	}
}

// ApplyTheme implements Themed.
func (f *Form) ApplyTheme() {
	f.SetBackgroundColor(f.theme.BgColor)
	f.SetBorderColor(f.theme.BorderFocusColor)
	f.SetTitleColor(f.theme.TitleColor)
	f.SetLabelColor(f.theme.MenuKeyColor)
	f.SetFieldStyle(tcell.StyleDefault.
		Foreground(f.theme.FgColor).
		Background(f.theme.TableHeaderBg))
	f.SetFieldTextColor(f.theme.TableHeaderFg)
	f.SetButtonStyle(tcell.StyleDefault.
		Foreground(f.theme.FgColor).
		Background(f.theme.BgColor))
	f.SetButtonActivatedStyle(tcell.StyleDefault.
		Foreground(f.theme.TableCursorFg).
		Background(f.theme.TableCursorBg))
}

// SetOnChange sets the callback fired on every edit with the full draft.
func (f *Form) SetOnChange(fn func(logs.Draft)) { f.onChange = fn }

// SetOnSubmit sets the Save callback.
func (f *Form) SetOnSubmit(fn func()) { f.onSubmit = fn }

// SetOnCancel sets the Cancel/Esc callback.
func (f *Form) SetOnCancel(fn func()) { f.onCancel = fn }

// SetDraft fills the fields without firing the change callback.
func (f *Form) SetDraft(d logs.Draft) {
	f.silent = true
	defer func() { f.silent = false }()
	f.draft = d
	if f.variant == logs.Email {
		f.inputText(labelEmailTo, d.EmailTo)
		return
	}
	f.inputText(labelMobile, d.MobileNumber)
	if ta, ok := f.GetFormItemByLabel(labelMessage).(*tview.TextArea); ok {
		ta.SetText(d.Message, false)
	}
}

// SetBusy marks the form as waiting on the server.
func (f *Form) SetBusy(busy bool) {
	f.busy = busy
	title := " New " + f.variant.Label() + " log "
	if busy {
		title = " Saving... "
	}
	f.SetTitle(title)
}

func (f *Form) inputText(label, text string) {
	if in, ok := f.GetFormItemByLabel(label).(*tview.InputField); ok {
		in.SetText(text)
	}
}

func (f *Form) changed() {
	if f.onChange != nil && !f.silent {
		f.onChange(f.draft)
	}
}
