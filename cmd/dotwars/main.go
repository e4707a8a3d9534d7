package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dotwars",
		Short: "DotWars strategy simulation",
		Long: `DotWars runs a turn-based strategy world (provinces, factions, economy)
and real-time style battles resolved in rounds.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to conf.yml (default: search configs/conf.yml upward)")

	rootCmd.AddCommand(newServeCmd(), newWorldgenCmd(), newSkirmishCmd(), newTokenCmd())
	return rootCmd
}
