package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Webcretaire/simgrid/sim"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kernel version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(sim.VersionString())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
