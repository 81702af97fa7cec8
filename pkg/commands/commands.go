package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/commands/options"
	"tableflip.dev/warden/pkg/logging"
	"tableflip.dev/warden/pkg/printers"
	"tableflip.dev/warden/pkg/store"
)

// deps is what a command needs once flags and config are resolved.
type deps struct {
	cfg     *store.Config
	logger  *zap.Logger
	svc     *app.Service
	printer *printers.Printer
}

type cli struct {
	output *options.OutputOptions
	global *options.GlobalOptions

	rt *deps
}

func New() *cobra.Command {
	c := &cli{
		output: &options.OutputOptions{},
		global: &options.GlobalOptions{},
	}

	cmd := &cobra.Command{
		Use:   "warden",
		Short: base.Wrap80("Administer a correctional facility: inmates, staff, visitors and cells."),
		Long: base.Wrap80("warden talks to the facility REST API. Every list, add, delete and status " +
			"command goes straight to the server; only settings and the login session are kept " +
			"on this machine. Run 'warden ui' for the interactive dashboard."),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.rt != nil {
				_ = c.rt.logger.Sync()
			}
		},
	}

	options.AddOutputArgs(cmd, c.output)
	options.AddGlobalArgs(cmd, c.global)
	c.AddCommands(cmd)
	return cmd
}

func (c *cli) AddCommands(topLevel *cobra.Command) {
	c.addLogin(topLevel)
	c.addLogout(topLevel)
	c.addWhoAmI(topLevel)
	c.addDashboard(topLevel)
	c.addBlocks(topLevel)
	c.addInmates(topLevel)
	c.addStaff(topLevel)
	c.addVisitors(topLevel)
	c.addCells(topLevel)
	c.addReport(topLevel)
	c.addSettings(topLevel)
	c.addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// setup resolves config, logger and service on first use. Notifications are
// printed on stderr so they never mix with --json output.
func (c *cli) setup(cmd *cobra.Command) (*deps, error) {
	if c.rt != nil {
		return c.rt, nil
	}
	cfg, logger, err := c.config()
	if err != nil {
		return nil, err
	}
	format, err := c.output.Format()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	svc, err := app.New(app.Options{
		Config:      cfg,
		Persistence: p,
		Sink:        printers.NotificationSink(cmd.ErrOrStderr()),
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("configured", zap.String("server", cfg.Server), zap.Duration("timeout", cfg.Timeout), zap.String("path", cfg.BasePath()))

	c.rt = &deps{
		cfg:     cfg,
		logger:  logger,
		svc:     svc,
		printer: printers.New(cmd.OutOrStdout(), format),
	}
	return c.rt, nil
}

// config loads the config file, applies the global flags and builds the
// logger.
func (c *cli) config() (*store.Config, *zap.Logger, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	c.global.Apply(cfg)

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// run resolves the runtime and hands it to fn, routing errors through
// --json handling.
func (c *cli) run(cmd *cobra.Command, fn func(rt *deps) error) error {
	rt, err := c.setup(cmd)
	if err != nil {
		return c.output.HandleError(err)
	}
	return c.output.HandleError(fn(rt))
}
