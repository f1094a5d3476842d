package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/rtcctl/internal/config"
	"github.com/danmuck/rtcctl/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// errReported marks failures whose diagnostic has already been logged.
var errReported = errors.New("rtcctl: already reported")

type options struct {
	configPath      string
	format          string
	metricsTextfile string
	runtimeControl  string
	messageID       uint64
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "rtcctl",
		Short: "Encode runtime-control options into packed daemon tasks",
		Long: `rtcctl turns a runtime-control option such as "log_level_increase=poller,2"
into the packed task value the daemon expects. Delivering the task is left to
the caller: print it, pipe the framed form, or hand the hex value to a signal
sender.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.runtimeControl == "" {
				return cmd.Help()
			}
			return runEncode(cmd, opts, opts.runtimeControl)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to rtcctl.toml")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format: text|json|hex|frame (overrides config)")
	root.PersistentFlags().StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write parse counters to this file (overrides config)")
	root.PersistentFlags().Uint64Var(&opts.messageID, "message-id", 1, "frame message id used with --format frame")
	root.Flags().StringVarP(&opts.runtimeControl, "runtime-control", "R", "", "runtime control option, same as the encode argument")

	root.AddCommand(
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newTypesCmd(opts),
		newConfigCmd(),
	)
	return root
}

// load resolves config with command-line flags applied last.
func (o *options) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.format != "" {
		cfg.Format = strings.ToLower(strings.TrimSpace(o.format))
	}
	if o.metricsTextfile != "" {
		cfg.MetricsTextfile = o.metricsTextfile
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	log.Debug().Str("config", o.configPath).Str("format", cfg.Format).Str("scope_mapping", cfg.ScopeMapping).Msg("rtcctl config resolved")
	return cfg, nil
}

func flushMetrics(cfg config.Config) {
	if cfg.MetricsTextfile == "" {
		return
	}
	if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
		log.Warn().Err(err).Str("path", cfg.MetricsTextfile).Msg("rtcctl metrics textfile write failed")
	}
}

func reported(err error) error {
	return fmt.Errorf("%w: %w", errReported, err)
}
