package command

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matheus3301/notilog/internal/dashboard"
	"github.com/matheus3301/notilog/internal/logs"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number of logs per type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return err
			}
			defer ctx.Close()

			stats, err := ctx.Client.Stats(cmd.Context())
			if err != nil {
				return userError(err, dashboard.MsgLoadFailed)
			}
			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			for _, v := range logs.Variants {
				fmt.Fprintf(out, "%-9s %s\n", v.Label()+":", humanize.Comma(int64(stats.Count(v))))
			}
			return nil
		},
	}
}
