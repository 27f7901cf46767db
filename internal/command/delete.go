package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matheus3301/notilog/internal/dashboard"
	"github.com/matheus3301/notilog/internal/logs"
)

// NewDeleteCmd creates the delete command.
func NewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <email|sms|whatsapp> <id>",
		Short: "Delete one log record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := logs.ParseVariant(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[1])
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return err
			}
			defer ctx.Close()

			deleted, err := ctx.Client.Delete(cmd.Context(), v, id)
			if err != nil {
				return userError(err, dashboard.MsgDeleteFailed)
			}
			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), map[string]int{"deleted": deleted})
			}
			fmt.Fprintln(cmd.OutOrStdout(), dashboard.MsgDeleted)
			return nil
		},
	}
}
