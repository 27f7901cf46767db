package command

import (
	"github.com/spf13/cobra"

	"github.com/matheus3301/notilog/internal/dashboard"
	"github.com/matheus3301/notilog/internal/filter"
	"github.com/matheus3301/notilog/internal/logs"
	"github.com/matheus3301/notilog/internal/render"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <email|sms|whatsapp>",
		Short: "List logs of one type, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := logs.ParseVariant(args[0])
			if err != nil {
				return err
			}
			ctx, err := GetContext(cmd)
			if err != nil {
				return err
			}
			defer ctx.Close()

			query, _ := cmd.Flags().GetString("query")
			width, _ := cmd.Flags().GetInt("width")

			all, err := ctx.Client.List(cmd.Context(), v)
			if err != nil {
				return userError(err, dashboard.MsgLoadFailed)
			}
			view := filter.Apply(all, filter.Queries{}.With(v, query))

			if ctx.JSONMode {
				if v == logs.Email {
					return writeJSON(cmd.OutOrStdout(), nonNil(view.Emails))
				}
				return writeJSON(cmd.OutOrStdout(), nonNil(view.Messages(v)))
			}
			return printTable(cmd.OutOrStdout(), render.Build(v, view), width)
		},
	}

	cmd.Flags().StringP("query", "q", "", "case-insensitive filter on the recipient or message")
	cmd.Flags().Int("width", 48, "truncate cells to this many columns (0 disables)")

	return cmd
}

// nonNil makes empty results encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
