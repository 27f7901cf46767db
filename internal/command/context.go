package command

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/matheus3301/notilog/internal/api"
	"github.com/matheus3301/notilog/internal/app"
	"github.com/matheus3301/notilog/internal/config"
	"github.com/matheus3301/notilog/internal/dashboard"
	"github.com/matheus3301/notilog/internal/profile"
	"github.com/matheus3301/notilog/internal/theme"
)

// CommandContext provides shared command resources.
type CommandContext struct {
	Client    *api.Client
	Dashboard *dashboard.Dashboard
	Toggler   *theme.Toggler
	Settings  config.Resolved
	Logger    *zap.Logger
	JSONMode  bool
}

// GetContext resolves the profile and builds the client stack for a command.
func GetContext(cmd *cobra.Command) (*CommandContext, error) {
	profileFlag, _ := cmd.Flags().GetString("profile")
	jsonMode, _ := cmd.Flags().GetBool("json")
	debug, _ := cmd.Flags().GetBool("debug")

	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	name := profile.Resolve(profileFlag)
	if err := profile.ValidateName(name); err != nil {
		return nil, err
	}

	ctx := &CommandContext{JSONMode: jsonMode}
	fxApp := fx.New(
		app.Core(app.Params{Profile: name, Debug: debug, Console: cmd.ErrOrStderr()}),
		fx.NopLogger,
		fx.Populate(&ctx.Client, &ctx.Dashboard, &ctx.Toggler, &ctx.Settings, &ctx.Logger),
	)
	if err := fxApp.Err(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// Close flushes the logger.
func (c *CommandContext) Close() {
	_ = c.Logger.Sync()
}
