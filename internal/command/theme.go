package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matheus3301/notilog/internal/theme"
)

// NewThemeCmd creates the theme command.
func NewThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [show|toggle|light|dark]",
		Short:     "Show or change the stored light/dark theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"show", "toggle", string(theme.Light), string(theme.Dark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return err
			}
			defer ctx.Close()

			action := "show"
			if len(args) == 1 {
				action = args[0]
			}
			switch action {
			case "toggle":
				if _, err := ctx.Toggler.Toggle(); err != nil {
					return err
				}
			case string(theme.Light), string(theme.Dark):
				if err := ctx.Toggler.Set(theme.Mode(action)); err != nil {
					return err
				}
			}

			mode := ctx.Toggler.Mode()
			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"theme":     string(mode),
					"reference": mode.Reference(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s (%s)\n", mode, mode.Reference())
			return nil
		},
	}
}
