package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matheus3301/notilog/internal/dashboard"
	"github.com/matheus3301/notilog/internal/logs"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [email|sms|whatsapp|all]",
		Short: "Write logs to emails.csv, sms.csv and whatsapp.csv",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var v logs.Variant
			if len(args) == 1 && !strings.EqualFold(args[0], "all") {
				parsed, err := logs.ParseVariant(args[0])
				if err != nil {
					return err
				}
				v = parsed
			}

			ctx, err := GetContext(cmd)
			if err != nil {
				return err
			}
			defer ctx.Close()

			dir, _ := cmd.Flags().GetString("dir")
			if err := ctx.Dashboard.LoadAll(cmd.Context()); err != nil {
				return userError(err, dashboard.MsgLoadFailed)
			}
			files, err := ctx.Dashboard.Export(v, dir)
			if err != nil {
				return err
			}

			if ctx.JSONMode {
				return writeJSON(cmd.OutOrStdout(), files)
			}
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}

	cmd.Flags().String("dir", "", "output directory (default: profile export_dir)")

	return cmd
}
