package main

import (
	"encoding/json"
	"fmt"

	"github.com/danmuck/rtcctl/internal/config"
	"github.com/spf13/cobra"
)

func newTypesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List process types accepted in \"=<type>[,<num>]\" targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			registry, err := cfg.Registry()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Format == config.FormatJSON {
				return json.NewEncoder(out).Encode(registry.Types())
			}
			for _, t := range registry.Types() {
				if _, err := fmt.Fprintf(out, "%3d  %s\n", t.Code, t.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
