package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Palette is the set of colors for one mode. Values are tcell color names
// or "#rrggbb" hex strings.
type Palette struct {
	Background   string `yaml:"background"`
	Foreground   string `yaml:"foreground"`
	Border       string `yaml:"border"`
	BorderFocus  string `yaml:"borderFocus"`
	HeaderFg     string `yaml:"headerFg"`
	HeaderBg     string `yaml:"headerBg"`
	CursorFg     string `yaml:"cursorFg"`
	CursorBg     string `yaml:"cursorBg"`
	CrumbActive  string `yaml:"crumbActive"`
	CrumbIdle    string `yaml:"crumbIdle"`
	MenuKey      string `yaml:"menuKey"`
	Title        string `yaml:"title"`
	Counter      string `yaml:"counter"`
	FlashInfo    string `yaml:"flashInfo"`
	FlashWarn    string `yaml:"flashWarn"`
	FlashErr     string `yaml:"flashErr"`
	PromptBorder string `yaml:"promptBorder"`
}

// DefaultPalette returns the built-in palette for a mode.
func DefaultPalette(m Mode) Palette {
	if m == Dark {
		return Palette{
			Background:   "#222222",
			Foreground:   "#dee2e6",
			Border:       "#375a7f",
			BorderFocus:  "#00bc8c",
			HeaderFg:     "#ffffff",
			HeaderBg:     "#303030",
			CursorFg:     "#222222",
			CursorBg:     "#00bc8c",
			CrumbActive:  "#f39c12",
			CrumbIdle:    "#3498db",
			MenuKey:      "#3498db",
			Title:        "#00bc8c",
			Counter:      "#f39c12",
			FlashInfo:    "#00bc8c",
			FlashWarn:    "#f39c12",
			FlashErr:     "#e74c3c",
			PromptBorder: "#375a7f",
		}
	}
	return Palette{
		Background:   "#ffffff",
		Foreground:   "#1a1a1a",
		Border:       "#8c8c8c",
		BorderFocus:  "#1a1a1a",
		HeaderFg:     "#ffffff",
		HeaderBg:     "#1a1a1a",
		CursorFg:     "#ffffff",
		CursorBg:     "#55595c",
		CrumbActive:  "#f0ad4e",
		CrumbIdle:    "#919aa1",
		MenuKey:      "#1a1a1a",
		Title:        "#1a1a1a",
		Counter:      "#4bbf73",
		FlashInfo:    "#1f9bcf",
		FlashWarn:    "#f0ad4e",
		FlashErr:     "#d9534f",
		PromptBorder: "#55595c",
	}
}

// LoadPalette returns the palette for m, overlaid with dir/<reference>.yaml
// when that file exists. Keys missing from the file keep their defaults.
func LoadPalette(dir string, m Mode) (Palette, error) {
	p := DefaultPalette(m)
	if dir == "" {
		return p, nil
	}
	path := filepath.Join(dir, m.Reference()+".yaml")
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read theme %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultPalette(m), fmt.Errorf("parse theme %s: %w", path, err)
	}
	return p, nil
}
