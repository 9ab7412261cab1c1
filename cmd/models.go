package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Webcretaire/simgrid/sim"
	_ "github.com/Webcretaire/simgrid/sim/models"
)

// modelsCmd prints the help text of every registered model and mode,
// the output users consult before picking --cfg values.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the available platform models and optimization modes",
	Run: func(cmd *cobra.Command, args []string) {
		for _, catalog := range []*sim.Catalog{
			sim.HostModels,
			sim.CPUModels,
			sim.NetworkModels,
			sim.DiskModels,
			sim.StorageModels,
			sim.OptimizationModes,
		} {
			catalog.Help(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
