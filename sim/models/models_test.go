package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Webcretaire/simgrid/sim"
	"github.com/Webcretaire/simgrid/sim/resource"
)

func TestCatalogs_BuiltinsRegistered(t *testing.T) {
	// GIVEN the built-in registrations from this package's init()
	// THEN each catalog lists its models, in registration order
	assert.Equal(t, []string{"LV08", "Constant", "SMPI", "IB", "CM02", "ns-3"}, sim.NetworkModels.Names())
	assert.Equal(t, []string{"Cas01"}, sim.CPUModels.Names())
	assert.Equal(t, []string{"default", "compound", "ptask_L07"}, sim.HostModels.Names())
	assert.Equal(t, []string{"Lazy", "TI", "Full"}, sim.OptimizationModes.Names())
}

func TestCas01_TimeIsSizeOverPower(t *testing.T) {
	// GIVEN a Cas01 instance
	entry, err := sim.CPUModels.Find("Cas01")
	require.NoError(t, err)
	m, err := entry.Build(resource.Lazy)
	require.NoError(t, err)
	cpu := m.(resource.CPUModel)

	// WHEN 300 flops run at speed 100
	a := cpu.Execution(0, 100, 300, 1)

	// THEN completion is projected at t=3
	assert.Equal(t, 3.0, a.FinishTime())
	assert.Equal(t, 3.0, m.NextOccurringEvent(0))
}

func TestCas01_PriorityWeightsTheRate(t *testing.T) {
	// GIVEN an execution with priority 0.5
	entry, err := sim.CPUModels.Find("Cas01")
	require.NoError(t, err)
	m, err := entry.Build(resource.Full)
	require.NoError(t, err)
	cpu := m.(resource.CPUModel)

	// WHEN 100 flops run at speed 100 with half weight
	a := cpu.Execution(0, 100, 100, 0.5)

	// THEN the action takes twice as long
	assert.Equal(t, 2.0, a.FinishTime())
}

func TestCM02_NoCorrectiveFactors(t *testing.T) {
	// GIVEN a CM02 instance
	entry, err := sim.NetworkModels.Find("CM02")
	require.NoError(t, err)
	m, err := entry.Build(resource.Lazy)
	require.NoError(t, err)
	net := m.(resource.NetworkModel)

	// WHEN 1000 bytes travel over latency 0.5 at bandwidth 100
	a := net.Communication(0, 0.5, 100, 1000)

	// THEN duration = size/bw + latency = 10 + 0.5
	assert.InDelta(t, 10.5, a.FinishTime(), 1e-9)
}

func TestLV08_AppliesSlowStartFactors(t *testing.T) {
	// GIVEN an LV08 instance
	entry, err := sim.NetworkModels.Find("LV08")
	require.NoError(t, err)
	m, err := entry.Build(resource.Lazy)
	require.NoError(t, err)
	net := m.(resource.NetworkModel)

	// WHEN 1000 bytes travel over latency 0.5 at bandwidth 100
	a := net.Communication(0, 0.5, 100, 1000)

	// THEN the latency is multiplied by 13.01 and the bandwidth by 0.97:
	// duration = 1000/(100*0.97) + 0.5*13.01
	want := 1000.0/(100.0*0.97) + 0.5*13.01
	assert.InDelta(t, want, a.FinishTime(), 1e-9)
}

func TestConstant_EveryTransferTakesOneSecond(t *testing.T) {
	// GIVEN the Constant network model
	entry, err := sim.NetworkModels.Find("Constant")
	require.NoError(t, err)
	m, err := entry.Build(resource.Full)
	require.NoError(t, err)
	net := m.(resource.NetworkModel)

	// WHEN transfers of wildly different sizes start at t=2
	small := net.Communication(2, 0.1, 10, 1)
	huge := net.Communication(2, 5, 1e9, 1e12)

	// THEN both complete exactly one second later
	assert.Equal(t, 3.0, small.FinishTime())
	assert.Equal(t, 3.0, huge.FinishTime())
}

func TestOptionalSupportModels_FailToBuild(t *testing.T) {
	// GIVEN models requiring support that is not compiled in
	for _, name := range []string{"SMPI", "IB", "ns-3"} {
		entry, err := sim.NetworkModels.Find(name)
		require.NoError(t, err, "%s must stay listed in the catalog", name)

		// WHEN selected
		_, err = entry.Build(resource.Lazy)

		// THEN the build explains the missing support
		require.Error(t, err)
		assert.Contains(t, err.Error(), "support is not built into this kernel")
	}
}

func TestTI_DocumentedButNotBuildable(t *testing.T) {
	// GIVEN the trace-integration optimization mode
	entry, err := sim.OptimizationModes.Find("TI")
	require.NoError(t, err)

	// THEN it is help-visible but carries no builder
	assert.NotEmpty(t, entry.Description)
	assert.Nil(t, entry.Build)
}

func TestDiskDefault_TimeIsSizeOverBandwidth(t *testing.T) {
	// GIVEN the default disk model
	entry, err := sim.DiskModels.Find("default")
	require.NoError(t, err)
	m, err := entry.Build(resource.Full)
	require.NoError(t, err)
	disk := m.(resource.DiskModel)

	// WHEN 150 bytes move at bandwidth 50
	a := disk.IO(0, 50, 150)

	// THEN the I/O completes at t=3
	assert.Equal(t, 3.0, a.FinishTime())
}
