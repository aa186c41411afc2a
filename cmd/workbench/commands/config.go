package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/workbench/internal/app"
)

func (c *CLI) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "config <listtargets|listproperties>",
		Short:     "Inspect the build description",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{app.ActionListTargets, app.ActionListProperties},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Config(cmd.Context(), args[0], c.options())
		},
	}
}
