package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "simgrid",
	Short: "Discrete-event simulator for distributed systems",
	Long: "simgrid runs discrete-event simulations of distributed systems: actors placed on " +
		"hosts compute, communicate over routed links, and perform I/O, all timed by " +
		"pluggable platform models.",
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
