package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tableflip.dev/warden/pkg/app"
	"tableflip.dev/warden/pkg/metrics"
	"tableflip.dev/warden/pkg/notify"
	"tableflip.dev/warden/pkg/store"
	teaui "tableflip.dev/warden/pkg/tui/app"
)

func (c *cli) addUI(topLevel *cobra.Command) {
	var (
		metricsAddr string
		reportDir   string
		debug       bool
	)
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive dashboard.",
		Example: `
warden ui
warden ui --metrics-addr :9090 --reports ~/reports
`,
		ValidArgs: []string{},
		Args:      cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.config()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			p, err := store.Load(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if metricsAddr == "" {
				metricsAddr = cfg.MetricsAddr
			}
			var m *metrics.Metrics
			if metricsAddr != "" {
				m = metrics.New()
				go func() {
					if err := m.Serve(ctx, metricsAddr, logger); err != nil {
						logger.Warn("metrics endpoint stopped", zap.Error(err))
					}
				}()
			}

			toasts := notify.NewChannel(64)
			svc, err := app.New(app.Options{
				Config:      cfg,
				Persistence: p,
				Sink:        toasts,
				Logger:      logger,
				Metrics:     m,
			})
			if err != nil {
				return err
			}
			return teaui.Run(ctx, svc, teaui.Options{
				Notifications: toasts.C(),
				ReportDir:     reportDir,
				Debug:         debug,
				Logger:        logger,
			})
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the dashboard runs.")
	cmd.Flags().StringVar(&reportDir, "reports", "", "Directory for generated reports. Defaults to the working directory.")
	cmd.Flags().BoolVar(&debug, "debug", false, "Open the event log on start.")

	topLevel.AddCommand(cmd)
}
