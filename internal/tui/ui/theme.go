package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/matheus3301/notilog/internal/theme"
)

// Theme holds color constants for the TUI.
type Theme struct {
	Mode              theme.Mode
	BgColor           tcell.Color
	FgColor           tcell.Color
	BorderColor       tcell.Color
	BorderFocusColor  tcell.Color
	TableHeaderFg     tcell.Color
	TableHeaderBg     tcell.Color
	TableCursorFg     tcell.Color
	TableCursorBg     tcell.Color
	CrumbActiveFg     tcell.Color
	CrumbActiveBg     tcell.Color
	CrumbInactiveFg   tcell.Color
	CrumbInactiveBg   tcell.Color
	MenuKeyColor      tcell.Color
	NumericKeyColor   tcell.Color
	TitleColor        tcell.Color
	CounterColor      tcell.Color
	FlashInfoColor    tcell.Color
	FlashWarnColor    tcell.Color
	FlashErrColor     tcell.Color
	PromptBorderColor tcell.Color
}

// DefaultTheme returns the built-in light theme.
func DefaultTheme() *Theme {
	return FromPalette(theme.Light, theme.DefaultPalette(theme.Light))
}

// FromPalette converts a palette of color names into a Theme. Unknown
// names fall back to the terminal default.
func FromPalette(m theme.Mode, p theme.Palette) *Theme {
	c := func(name string) tcell.Color {
		if name == "" {
			return tcell.ColorDefault
		}
		return tcell.GetColor(name)
	}
	return &Theme{
		Mode:              m,
		BgColor:           c(p.Background),
		FgColor:           c(p.Foreground),
		BorderColor:       c(p.Border),
		BorderFocusColor:  c(p.BorderFocus),
		TableHeaderFg:     c(p.HeaderFg),
		TableHeaderBg:     c(p.HeaderBg),
		TableCursorFg:     c(p.CursorFg),
		TableCursorBg:     c(p.CursorBg),
		CrumbActiveFg:     c(p.HeaderFg),
		CrumbActiveBg:     c(p.CrumbActive),
		CrumbInactiveFg:   c(p.HeaderFg),
		CrumbInactiveBg:   c(p.CrumbIdle),
		MenuKeyColor:      c(p.MenuKey),
		NumericKeyColor:   c(p.Counter),
		TitleColor:        c(p.Title),
		CounterColor:      c(p.Counter),
		FlashInfoColor:    c(p.FlashInfo),
		FlashWarnColor:    c(p.FlashWarn),
		FlashErrColor:     c(p.FlashErr),
		PromptBorderColor: c(p.PromptBorder),
	}
}

// Themed is implemented by components that restyle themselves when the
// theme changes.
type Themed interface {
	ApplyTheme()
}
