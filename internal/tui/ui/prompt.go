package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// PromptMode indicates the type of prompt (command or filter).
type PromptMode int

const (
	PromptCommand PromptMode = iota
	PromptFilter
)

// Prompt is a command/filter input bar.
type Prompt struct {
	*tview.InputField
	theme    *Theme
	mode     PromptMode
	onSubmit func(mode PromptMode, text string)
	onChange func(mode PromptMode, text string)
	onCancel func()
	silent   bool
}

// NewPrompt creates a new prompt input bar.
func NewPrompt(theme *Theme) *Prompt {
	input := tview.NewInputField()
	input.SetBorder(true)

	p := &Prompt{
		InputField: input,
		theme:      theme,
	}
	p.ApplyTheme()

	input.SetChangedFunc(func(text string) {
		if p.onChange != nil && !p.silent {
			p.onChange(p.mode, text)
		}
	})

	input.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEnter:
			text := p.GetText()
			if p.onSubmit != nil && (text != "" || p.mode == PromptFilter) {
				p.onSubmit(p.mode, text)
			}
			p.reset()
		case tcell.KeyEscape:
			p.reset()
			if p.onCancel != nil {
				p.onCancel()
			}
		}
	})

	return p
}

// ApplyTheme implements Themed.
func (p *Prompt) ApplyTheme() {
	p.SetBorderColor(p.theme.PromptBorderColor)
	p.SetBackgroundColor(p.theme.BgColor)
	p.SetFieldBackgroundColor(p.theme.BgColor)
	p.SetFieldTextColor(p.theme.FgColor)
	p.SetLabelColor(p.theme.MenuKeyColor)
	p.SetTitleColor(p.theme.TitleColor)
}

// SetOnSubmit sets the callback when the prompt is submitted.
func (p *Prompt) SetOnSubmit(fn func(mode PromptMode, text string)) {
	p.onSubmit = fn
}

// SetOnChange sets the callback fired on every edit. Filter prompts use it
// to narrow tables as the user types.
func (p *Prompt) SetOnChange(fn func(mode PromptMode, text string)) {
	p.onChange = fn
}

// SetOnCancel sets the callback when the prompt is cancelled.
func (p *Prompt) SetOnCancel(fn func()) {
	p.onCancel = fn
}

// Activate shows the prompt in the specified mode, prefilled with text.
func (p *Prompt) Activate(mode PromptMode, title, text string) {
	p.mode = mode
	switch mode {
	case PromptCommand:
		p.SetLabel(":")
	case PromptFilter:
		p.SetLabel("/")
	}
	p.SetTitle(" " + title + " ")
	p.SetText(text)
}

// reset clears the field without firing the change callback.
func (p *Prompt) reset() {
	p.silent = true
	p.SetText("")
	p.silent = false
}

// Mode returns the current prompt mode.
func (p *Prompt) Mode() PromptMode {
	return p.mode
}
