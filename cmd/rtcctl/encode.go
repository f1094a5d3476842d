package main

import (
	"github.com/danmuck/rtcctl/internal/logging"
	"github.com/danmuck/rtcctl/internal/observability"
	"github.com/danmuck/rtcctl/internal/protocol/envelope"
	"github.com/danmuck/rtcctl/internal/rtc"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newEncodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <runtime-option>",
		Short: "Parse a runtime-control option and print the packed task",
		Example: `  rtcctl encode log_level_increase
  rtcctl encode log_level_decrease=1234 --format hex
  rtcctl encode "log_level_increase=history syncer,2" --format json
  rtcctl encode config_cache_reload --format frame > task.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, opts, args[0])
		},
	}
}

func runEncode(cmd *cobra.Command, opts *options, arg string) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	defer flushMetrics(cfg)

	layout, err := cfg.Layout()
	if err != nil {
		return err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	parser := rtc.NewParser(registry, logging.DiagnosticReporter{})
	task, err := parser.ParseRuntimeControl(arg)
	if err != nil {
		observability.RecordParse("", "", rtc.ErrorCode(err))
		return reported(err)
	}
	observability.RecordParse(task.Command.String(), task.Scope.Kind.String(), rtc.ErrorCode(nil))

	env, err := envelope.NewTask(task, layout)
	if err != nil {
		return err
	}
	log.Debug().
		Str("request_id", env.RequestID).
		Str("task", hexTask(env.Packed)).
		Msgf("rtcctl.encode %s", task)

	if err := writeTask(cmd.OutOrStdout(), cfg.Format, env, registry, opts.messageID); err != nil {
		return err
	}
	observability.RecordEncode(cfg.Format)
	return nil
}
