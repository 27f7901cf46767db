// Package theme holds the light/dark display mode and its palettes.
package theme

import "strings"

// Mode is the display theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Default is used when no valid mode is stored.
const Default = Light

// ParseMode returns the mode named by s, or Default for anything else.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Dark:
		return Dark
	case Light:
		return Light
	}
	return Default
}

// Valid reports whether m is light or dark.
func (m Mode) Valid() bool {
	return m == Light || m == Dark
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Reference is the palette name bound to the mode.
func (m Mode) Reference() string {
	if m == Dark {
		return "darkly"
	}
	return "lux"
}

// ButtonLabel names the mode a toggle would switch to.
func (m Mode) ButtonLabel() string {
	if m == Dark {
		return "Light"
	}
	return "Dark"
}

// Change is the payload of theme change events.
type Change struct {
	Mode      Mode
	Reference string
	Label     string
}

func changeFor(m Mode) Change {
	return Change{Mode: m, Reference: m.Reference(), Label: m.ButtonLabel()}
}
