package main

import (
	"fmt"

	"github.com/danmuck/rtcctl/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "rtcctl.toml"

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check an rtcctl.toml file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPathArg(args)
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("wrote rtcctl config template")
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Load a config file and report the first problem",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPathArg(args)
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok %s scope_mapping=%s format=%s process_type_overrides=%d\n",
				path, cfg.ScopeMapping, cfg.Format, len(cfg.ProcessTypes))
			return err
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}

func configPathArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return defaultConfigPath
}
