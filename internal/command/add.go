package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matheus3301/notilog/internal/dashboard"
	"github.com/matheus3301/notilog/internal/logs"
)

// NewAddCmd creates the add command.
func NewAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <email|sms|whatsapp> <recipient> [message...]",
		Short: "Record a new notification attempt",
		Example: `  notilogctl add email ops@example.com
  notilogctl add sms +5511999990000 "order shipped"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := logs.ParseVariant(args[0])
			if err != nil {
				return err
			}
			draft, err := draftFromArgs(v, args[1:])
			if err != nil {
				return err
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return err
			}
			defer ctx.Close()

			if err := ctx.Client.Create(cmd.Context(), v, draft); err != nil {
				return userError(err, dashboard.SaveFailedText(v))
			}
			fmt.Fprintln(cmd.OutOrStdout(), dashboard.SavedText(v))
			return nil
		},
	}
}

func draftFromArgs(v logs.Variant, args []string) (logs.Draft, error) {
	if v == logs.Email {
		if len(args) != 1 {
			return logs.Draft{}, fmt.Errorf("usage: %s add email <address>", AppName)
		}
		return logs.Draft{EmailTo: args[0]}, nil
	}
	if len(args) < 2 {
		return logs.Draft{}, fmt.Errorf("usage: %s add %s <mobile> <message>", AppName, v)
	}
	return logs.Draft{MobileNumber: args[0], Message: strings.Join(args[1:], " ")}, nil
}
