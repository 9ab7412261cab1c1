// register.go wires the built-in models into the kernel's catalogs. This
// init() runs when any package imports sim/models; production code (cmd, the
// platform loaders' callers) imports it directly, kernel tests use a blank
// import. Descriptions are the user-facing text shown by the help surface.
package models

import (
	"github.com/Webcretaire/simgrid/sim"
	"github.com/Webcretaire/simgrid/sim/resource"
)

func init() {
	sim.NetworkModels.Register("LV08",
		"Realistic network analytic model (slow-start modeled by multiplying latency by 13.01, bandwidth by .97).",
		newLV08)
	sim.NetworkModels.Register("Constant",
		"Simplistic network model where all communication take a constant time (one second). This model "+
			"provides the lowest realism, but is (marginally) faster.",
		newConstant)
	sim.NetworkModels.Register("SMPI",
		"Realistic network model specifically tailored for HPC settings (accurate modeling of slow start with "+
			"correction factors on three intervals: < 1KiB, < 64 KiB, >= 64 KiB). Requires SMPI support.",
		newSMPI)
	sim.NetworkModels.Register("IB",
		"Realistic network model specifically tailored for HPC settings, with Infiniband contention model. "+
			"Requires SMPI support.",
		newIB)
	sim.NetworkModels.Register("CM02",
		"Legacy network analytic model (very similar to LV08, but without corrective factors; the timings of "+
			"small messages are thus poorly modeled).",
		newCM02)
	sim.NetworkModels.Register("ns-3",
		"Network pseudo-model using the ns-3 tcp model instead of an analytic model. Requires ns-3 support.",
		newNS3)

	sim.CPUModels.Register("Cas01",
		"Simplistic CPU model (time=size/power).",
		newCas01)

	sim.HostModels.Register("default",
		"Default host model. Currently, CPU:Cas01 and network:LV08 (with cross traffic enabled).",
		newHostModel("default"))
	sim.HostModels.Register("compound",
		"Host model that is automatically chosen if you change the network and CPU models.",
		newHostModel("compound"))
	sim.HostModels.Register("ptask_L07",
		"Host model somehow similar to Cas01+CM02 but allowing parallel tasks.",
		newHostModel("ptask_L07"))

	sim.DiskModels.Register("default",
		"Simplistic disk model.",
		newDiskDefault)
	sim.StorageModels.Register("default",
		"Simplistic storage model.",
		newStorageDefault)

	sim.OptimizationModes.Register("Lazy",
		"Lazy action management (partial invalidation plus a heap of projected action completions).",
		nil)
	sim.OptimizationModes.Register("TI",
		"Trace integration. Highly optimized mode when using availability traces (only available for the Cas01 "+
			"CPU model for now).",
		nil)
	sim.OptimizationModes.Register("Full",
		"Full update of remaining work and shares. Slow but may be useful when debugging.",
		nil)
}

// Compile-time checks that each model satisfies its family capability.
var (
	_ resource.CPUModel     = (*cas01)(nil)
	_ resource.NetworkModel = (*cm02)(nil)
	_ resource.NetworkModel = (*constant)(nil)
	_ resource.DiskModel    = (*simpleIO)(nil)
	_ resource.StorageModel = (*simpleIO)(nil)
	_ resource.HostModel    = (*hostModel)(nil)
)
