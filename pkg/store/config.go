package store

import (
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Defaults for the keys read by LoadConfig.
const (
	DefaultServer  = "http://localhost:8080/api/"
	DefaultTimeout = 10 * time.Second
	DefaultPath    = "~/.warden.db"
	DefaultLogFile = "~/.warden/warden.log"
)

// envKeys maps nested keys onto env names, log.level -> WARDEN_LOG_LEVEL.
var envKeys = strings.NewReplacer(".", "_")

// Config is the resolved warden configuration.
type Config struct {
	Path        string        `json:"path" yaml:"path"`
	Server      string        `json:"server" yaml:"server"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
	LogLevel    string        `json:"logLevel" yaml:"logLevel"`
	LogFormat   string        `json:"logFormat" yaml:"logFormat"`
	LogFile     string        `json:"logFile" yaml:"logFile"`
	MetricsAddr string        `json:"metricsAddr" yaml:"metricsAddr"`
}

// BasePath returns the local store directory with ~ expanded.
func (c *Config) BasePath() string {
	if expanded, err := homedir.Expand(c.Path); err == nil {
		return expanded
	}
	return c.Path
}

// LoadConfig reads .warden (yaml) from $WARDEN_CONFIG_PATH, the working
// directory or the home directory, then applies WARDEN_* environment
// overrides. A missing config file is not an error.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("server", DefaultServer)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", DefaultLogFile)
	v.SetDefault("metrics.addr", "")
	v.SetConfigName(".warden") // .yaml is implicit
	v.SetConfigType("yaml")
	v.SetEnvPrefix("WARDEN")
	v.SetEnvKeyReplacer(envKeys)
	v.AutomaticEnv()

	if override := os.Getenv("WARDEN_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		Path:        v.GetString("path"),
		Server:      v.GetString("server"),
		Timeout:     v.GetDuration("timeout"),
		LogLevel:    v.GetString("log.level"),
		LogFormat:   v.GetString("log.format"),
		LogFile:     v.GetString("log.file"),
		MetricsAddr: v.GetString("metrics.addr"),
	}, nil
}
