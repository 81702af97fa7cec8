package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/warden/pkg/store"
)

// GlobalOptions override values from the config file.
type GlobalOptions struct {
	Server    string
	Timeout   time.Duration
	LogLevel  string
	LogFormat string
}

func AddGlobalArgs(cmd *cobra.Command, o *GlobalOptions) {
	cmd.PersistentFlags().StringVar(&o.Server, "server", "",
		"Base URL of the facility API, example: --server=http://localhost:8080/api/.")
	cmd.PersistentFlags().DurationVar(&o.Timeout, "timeout", 0,
		"Timeout of each API request.")
	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"Log level. One of 'debug', 'info', 'warn' or 'error'.")
	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "",
		"Log format. One of 'console' or 'json'.")
}

// Apply copies the flags that were set onto cfg.
func (o *GlobalOptions) Apply(cfg *store.Config) {
	if o.Server != "" {
		cfg.Server = o.Server
	}
	if o.Timeout > 0 {
		cfg.Timeout = o.Timeout
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
}
