// Package commands implements the CLI commands for the CDP support engine.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	noColor bool
	asJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "support-engine-cli",
	Short: "CDP Support Bot - ask questions, refresh and search documentation",
	Long: `The support engine CLI answers "how-to" questions about Segment,
mParticle, Lytics and Zeotap, refreshes platform documentation into the
local document store, and runs semantic searches over the ingested
content.

Questions are resolved against the built-in knowledge base by default;
pass --server to route them through a running API instance instead.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "emit results as JSON on stdout")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
