package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matheus3301/notilog/internal/dashboard"
	"github.com/matheus3301/notilog/internal/logs"
)

// ErrUnknownCommand is returned for commands that map to no action.
var ErrUnknownCommand = errors.New("unknown command")

// Command represents a parsed command.
type Command struct {
	Name string
	Args string
}

// ParseCommand parses a command string (without the leading ':').
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	parts := strings.SplitN(input, " ", 2)
	cmd := Command{Name: strings.ToLower(parts[0])}
	if len(parts) > 1 {
		cmd.Args = strings.TrimSpace(parts[1])
	}
	return cmd
}

// IsQuit reports whether the command exits the application.
func (c Command) IsQuit() bool {
	switch c.Name {
	case "quit", "q", "q!", "exit":
		return true
	}
	return false
}

// IsHelp reports whether the command opens the help page.
func (c Command) IsHelp() bool {
	switch c.Name {
	case "help", "h", "?":
		return true
	}
	return false
}

// Action maps the command to a dashboard action. focused is the variant of
// the table that has focus; it is the default target of export and filter.
func (c Command) Action(focused logs.Variant) (dashboard.Action, error) {
	switch c.Name {
	case "reload", "r", "refresh":
		return dashboard.Action{Kind: dashboard.Reload}, nil
	case "theme", "t":
		return dashboard.Action{Kind: dashboard.ToggleTheme}, nil
	case "filter", "f":
		return dashboard.Action{Kind: dashboard.SetQuery, Variant: focused, Query: c.Args}, nil
	case "new", "add":
		v, err := c.variant(focused)
		if err != nil {
			return dashboard.Action{}, err
		}
		return dashboard.Action{Kind: dashboard.OpenForm, Variant: v}, nil
	case "export", "e":
		if strings.EqualFold(c.Args, "all") {
			return dashboard.Action{Kind: dashboard.Export}, nil
		}
		v, err := c.variant(focused)
		if err != nil {
			return dashboard.Action{}, err
		}
		return dashboard.Action{Kind: dashboard.Export, Variant: v}, nil
	}
	return dashboard.Action{}, fmt.Errorf("%w: %s", ErrUnknownCommand, c.Name)
}

func (c Command) variant(focused logs.Variant) (logs.Variant, error) {
	if c.Args == "" {
		return focused, nil
	}
	return logs.ParseVariant(c.Args)
}

// runCommand executes a command entered at the ':' prompt.
func (a *App) runCommand(cmd Command) {
	switch {
	case cmd.Name == "":
		return
	case cmd.IsQuit():
		a.Stop()
		return
	case cmd.IsHelp():
		a.showHelp()
		return
	}

	act, err := cmd.Action(a.focused)
	if err != nil {
		a.flash.Warn(err.Error())
		return
	}
	switch act.Kind {
	case dashboard.Reload:
		a.reload()
	case dashboard.SetQuery, dashboard.OpenForm:
		a.dispatch(act)
	default:
		a.dispatchAsync(act, nil)
	}
}
