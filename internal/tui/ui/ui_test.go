package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/theme"
)

func TestFromPalette(t *testing.T) {
	p := theme.DefaultPalette(theme.Dark)
	p.Title = "red"
	p.Counter = ""

	th := FromPalette(theme.Dark, p)
	if th.Mode != theme.Dark {
		t.Errorf("Mode = %q", th.Mode)
	}
	if th.TitleColor != tcell.ColorRed {
		t.Errorf("TitleColor = %v, want red", th.TitleColor)
	}
	if th.CounterColor != tcell.ColorDefault {
		t.Errorf("empty color should map to ColorDefault, got %v", th.CounterColor)
	}
	if DefaultTheme().Mode != theme.Light {
		t.Error("DefaultTheme() should be light")
	}
}

func TestPagesStack(t *testing.T) {
	p := NewPages()
	for _, name := range []string{"logs", "details", "confirm"} {
		p.AddPage(name, tview.NewBox(), true, false)
	}
	var crumbs []string
	p.SetOnChange(func(stack []string) { crumbs = stack })

	p.Reset("logs")
	p.Push("details")
	if p.Current() != "details" {
		t.Fatalf("Current() = %q", p.Current())
	}
	if strings.Join(crumbs, ">") != "logs>details" {
		t.Errorf("crumbs = %v", crumbs)
	}

	p.Push("confirm")
	p.Remove("details")
	if p.Depth() != 1 || p.Current() != "logs" {
		t.Errorf("after Remove stack = %v", p.Stack())
	}
	if p.Contains("confirm") {
		t.Error("Remove should drop pages above the removed one")
	}
	if p.Pop() != "logs" || p.Pop() != "" {
		t.Error("Pop on drained stack should return empty")
	}
}

func TestOverlayKeepsPageBeneath(t *testing.T) {
	p := NewPages()
	p.AddPage("logs", tview.NewBox(), true, false)
	p.AddOverlay("form", tview.NewBox())

	p.Reset("logs")
	p.Push("form")
	front, _ := p.GetFrontPage()
	if front != "form" {
		t.Errorf("front = %q, want form", front)
	}
	// tview reports visible pages through GetPageNames(true).
	visible := strings.Join(p.GetPageNames(true), ",")
	if !strings.Contains(visible, "logs") {
		t.Errorf("visible pages = %q, overlay should not hide logs", visible)
	}
}

func TestFlashExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFlashModel()
	f.now = func() time.Time { return now }

	f.Err("Failed to load data.")
	m := f.GetMessage()
	if m == nil || m.Level != FlashErr || m.Text != "Failed to load data." {
		t.Fatalf("GetMessage() = %+v", m)
	}
	select {
	case got := <-f.Watch():
		if got.Text != "Failed to load data." {
			t.Errorf("watched %q", got.Text)
		}
	default:
		t.Error("Watch() did not receive the message")
	}

	now = now.Add(6 * time.Second)
	if f.Get() != "" {
		t.Errorf("expired message still shown: %q", f.Get())
	}
}

func TestFlashBarEscapes(t *testing.T) {
	fb := NewFlashBar(DefaultTheme())
	fb.Update(&FlashMessage{Text: "bad [tag]", Level: FlashWarn})
	if got := fb.GetText(false); !strings.Contains(got, tview.Escape("bad [tag]")) {
		t.Errorf("flash text = %q", got)
	}
}

func TestPromptChangeSuppressedOnReset(t *testing.T) {
	p := NewPrompt(DefaultTheme())
	var changes []string
	p.SetOnChange(func(mode PromptMode, text string) {
		if mode == PromptFilter {
			changes = append(changes, text)
		}
	})

	p.Activate(PromptFilter, "Filter Emails", "ac")
	p.SetText("acme")
	p.reset()

	if strings.Join(changes, ",") != "ac,acme" {
		t.Errorf("changes = %v", changes)
	}
	if p.GetText() != "" {
		t.Errorf("text after reset = %q", p.GetText())
	}
}

func TestStatsPanel(t *testing.T) {
	sp := NewStatsPanel(DefaultTheme())
	sp.Update(StatsData{Profile: "main", Backend: "http://127.0.0.1:8000"})
	if got := sp.GetText(true); !strings.Contains(got, "Emails:   -") {
		t.Errorf("unloaded counts should be dashes:\n%s", got)
	}

	sp.Update(StatsData{Profile: "main", Stats: logs.Stats{Emails: 12345, SMS: 2}, Loaded: true})
	got := sp.GetText(true)
	if !strings.Contains(got, "12,345") || !strings.Contains(got, "SMS:      2") {
		t.Errorf("stats panel:\n%s", got)
	}
}
