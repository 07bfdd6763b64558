package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	flagConfig         = "config"
	flagLogLevel       = "log-level"
	flagLogFormat      = "log-format"
	flagMetricsAddr    = "metrics-addr"
	flagReportInterval = "report-interval"
	flagTimeout        = "timeout"

	envPrefix = "SVCRUN"
)

type config struct {
	LogLevel       string
	LogFormat      string
	MetricsAddr    string
	ReportInterval time.Duration
	Timeout        time.Duration
}

// app carries what every subcommand needs once flags are resolved.
type app struct {
	v   *viper.Viper
	cfg config
	log *logrus.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	cmd := &cobra.Command{
		Use:           "svcrun",
		Short:         "svcrun runs a cancellable service until interrupted",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addGlobalFlags(cmd.PersistentFlags())
	cmd.AddCommand(
		newListenCommand(a),
		newPumpCommand(a),
		newPollCommand(a),
		newWatchCommand(a),
	)
	return cmd
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String(flagConfig, "", "config file (yaml, toml or json)")
	flags.String(flagLogLevel, "info", "log level")
	flags.String(flagLogFormat, "text", "log format: text or json")
	flags.String(flagMetricsAddr, "", "serve Prometheus metrics on this address; empty disables")
	flags.Duration(flagReportInterval, 10*time.Second, "progress log period; 0 disables")
	flags.Duration(flagTimeout, 0, "stop the service after this long; 0 runs until interrupted")
}

// init resolves flags, SVCRUN_* environment variables and the config file,
// in that order of precedence, and builds the logger.
func (a *app) init(flags *pflag.FlagSet) error {
	if err := a.v.BindPFlags(flags); err != nil {
		return err
	}
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if file := a.v.GetString(flagConfig); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	}

	a.cfg = config{
		LogLevel:       a.v.GetString(flagLogLevel),
		LogFormat:      a.v.GetString(flagLogFormat),
		MetricsAddr:    a.v.GetString(flagMetricsAddr),
		ReportInterval: a.v.GetDuration(flagReportInterval),
		Timeout:        a.v.GetDuration(flagTimeout),
	}

	log, err := newLogger(a.cfg)
	if err != nil {
		return err
	}
	a.log = log
	return nil
}

func newLogger(cfg config) (*logrus.Logger, error) {
	log := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	switch cfg.LogFormat {
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return log, nil
}
