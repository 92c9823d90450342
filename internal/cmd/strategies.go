package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/gridpricer/service/strategy"
)

func newStrategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List registered placement strategies",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range strategy.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
