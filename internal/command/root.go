package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "notilogctl"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "notilogctl - scriptable client for the notification log API",
		Long:          "notilogctl lists, creates, deletes and exports Email, SMS and WhatsApp notification logs.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("profile", "", "profile name (overrides config default)")
	cmd.PersistentFlags().Bool("json", false, "output in JSON format")
	cmd.PersistentFlags().Bool("debug", false, "log HTTP requests at debug level")

	cmd.AddCommand(
		NewListCmd(),
		NewStatsCmd(),
		NewAddCmd(),
		NewDeleteCmd(),
		NewExportCmd(),
		NewThemeCmd(),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd(Version).Execute()
}
