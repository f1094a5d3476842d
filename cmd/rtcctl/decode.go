package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/rtcctl/internal/config"
	"github.com/danmuck/rtcctl/internal/protocol/envelope"
	"github.com/danmuck/rtcctl/internal/protocol/frame"
	"github.com/spf13/cobra"
)

func newDecodeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <packed-task|->",
		Short: "Unpack a task value, or a task frame read from stdin with \"-\"",
		Example: `  rtcctl decode 0x00020a01
  rtcctl decode 33153
  rtcctl encode log_level_increase --format frame | rtcctl decode -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			layout, err := cfg.Layout()
			if err != nil {
				return err
			}
			registry, err := cfg.Registry()
			if err != nil {
				return err
			}

			var env envelope.Task
			if args[0] == "-" {
				fr, err := frame.ReadFrame(cmd.InOrStdin(), frame.DefaultLimits())
				if err != nil {
					return fmt.Errorf("read task frame: %w", err)
				}
				if env, err = envelope.DecodeTaskFrame(fr, layout); err != nil {
					return err
				}
			} else {
				packed, err := strconv.ParseUint(strings.TrimSpace(args[0]), 0, 32)
				if err != nil {
					return fmt.Errorf("packed task must be a 32-bit unsigned value: %w", err)
				}
				env.Packed = uint32(packed)
				if env.Task, err = layout.Decode(env.Packed); err != nil {
					return err
				}
			}

			format := cfg.Format
			if format == config.FormatFrame {
				format = config.FormatText
			}
			return writeTask(cmd.OutOrStdout(), format, env, registry, opts.messageID)
		},
	}
}
