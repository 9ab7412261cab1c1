package cmd

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Webcretaire/simgrid/sim"
	_ "github.com/Webcretaire/simgrid/sim/models"
	"github.com/Webcretaire/simgrid/sim/platform"
	"github.com/Webcretaire/simgrid/sim/telemetry"
)

var (
	// CLI flags for the run subcommand
	platformFile   string   // Platform description (YAML)
	deploymentFile string   // Actor deployment (YAML)
	cfgOptions     []string // key:value model/optimization selections
	logLevel       string   // Log verbosity level
	searchDirs     []string // Extra directories searched for ancillary files
	metricsAddr    string   // Optional Prometheus listen address
)

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a platform and deployment file",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if platformFile == "" {
			logrus.Fatalf("No platform file provided. Exiting simulation.")
		}

		sim.Init(args)
		for _, dir := range searchDirs {
			sim.AddSearchPath(dir)
		}

		e := sim.NewEngine()
		for _, opt := range cfgOptions {
			if err := e.SetConfig(opt); err != nil {
				logrus.Fatalf("Invalid configuration option: %v", err)
			}
		}

		if metricsAddr != "" {
			collector, err := telemetry.NewKernelCollector(nil, e)
			if err != nil {
				logrus.Fatalf("unable to register metrics: %v", err)
			}
			go func() {
				http.Handle("/metrics", collector.Handler())
				if err := http.ListenAndServe(metricsAddr, nil); err != nil {
					logrus.Errorf("metrics server: %v", err)
				}
			}()
		}

		registerBuiltinFunctions(e)

		startTime := time.Now()

		if err := platform.LoadPlatform(e, platformFile); err != nil {
			logrus.Fatalf("unable to load platform: %v", err)
		}
		if deploymentFile != "" {
			if err := platform.LoadDeployment(e, deploymentFile); err != nil {
				logrus.Fatalf("unable to load deployment: %v", err)
			}
		}

		if err := e.Run(); err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}

		logrus.Infof("Simulation complete: simulated %gs in %v.", e.Now(), time.Since(startTime))
		sim.Exit()
		sim.FreePluginDescriptions()
	},
}

// registerBuiltinFunctions installs the actor classes deployments can
// reference without the caller registering their own.
func registerBuiltinFunctions(e *sim.Engine) {
	// worker <flops>...: executes each workload in sequence.
	e.RegisterFunction("worker", func(a *sim.Actor, args []string) {
		for _, arg := range args {
			flops, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				logrus.Errorf("worker %s: bad workload %q", a.Name(), arg)
				return
			}
			if err := a.Execute(flops); err != nil {
				logrus.Warnf("worker %s: execution failed: %v", a.Name(), err)
				return
			}
		}
	})

	// sleeper <seconds>: sleeps, then exits.
	e.RegisterFunction("sleeper", func(a *sim.Actor, args []string) {
		duration := 1.0
		if len(args) > 0 {
			if parsed, err := strconv.ParseFloat(args[0], 64); err == nil {
				duration = parsed
			}
		}
		a.Sleep(duration)
	})

	// sender <dest-host> <bytes>: one point-to-point transfer.
	e.RegisterFunction("sender", func(a *sim.Actor, args []string) {
		if len(args) < 2 {
			logrus.Errorf("sender %s: expected <dest-host> <bytes>", a.Name())
			return
		}
		dest := a.Engine().HostByNameOrNil(args[0])
		if dest == nil {
			logrus.Errorf("sender %s: unknown host %q", a.Name(), args[0])
			return
		}
		size, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			logrus.Errorf("sender %s: bad size %q", a.Name(), args[1])
			return
		}
		if err := a.SendTo(dest, size); err != nil {
			logrus.Warnf("sender %s: transfer failed: %v", a.Name(), err)
		}
	})
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&platformFile, "platform", "", "Platform description file (YAML)")
	runCmd.Flags().StringVar(&deploymentFile, "deployment", "", "Actor deployment file (YAML)")
	runCmd.Flags().StringArrayVar(&cfgOptions, "cfg", nil, "Configuration option (key:value), repeatable")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringArrayVar(&searchDirs, "search-path", nil, "Directory searched for ancillary files, repeatable")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	rootCmd.AddCommand(runCmd)
}
