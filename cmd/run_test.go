package cmd

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Webcretaire/simgrid/sim"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.FatalLevel)
	}
	os.Exit(m.Run())
}

func newRunnableEngine(t *testing.T) (*sim.Engine, *sim.Host, *sim.Host) {
	t.Helper()
	e := sim.NewEngine()
	t.Cleanup(e.Shutdown)
	require.NoError(t, e.SetupModels())
	root := e.NewNetzoneRoot("root", "full")
	h0 := root.AddHost("node-0", 100)
	h1 := root.AddHost("node-1", 100)
	wire := root.AddLink("wire", 1000, 0.001)
	root.AddRoute(h0.Netpoint(), h1.Netpoint(), []*sim.Link{wire})
	return e, h0, h1
}

func TestBuiltinWorker_ExecutesEachWorkload(t *testing.T) {
	// GIVEN the built-in worker class with two workloads
	e, h0, _ := newRunnableEngine(t)
	registerBuiltinFunctions(e)
	factory, err := e.ActorCodeFactory("worker")
	require.NoError(t, err)

	// WHEN an actor runs 100 then 50 flops on a 100-flops host
	e.AddActor("worker-0", h0, factory([]string{"100", "50"}))
	require.NoError(t, e.Run())

	// THEN both executed back to back
	assert.InDelta(t, 1.5, e.Now(), 1e-9)
}

func TestBuiltinSleeper_DefaultsToOneSecond(t *testing.T) {
	// GIVEN a sleeper deployed without arguments
	e, h0, _ := newRunnableEngine(t)
	registerBuiltinFunctions(e)
	factory, err := e.ActorCodeFactory("sleeper")
	require.NoError(t, err)
	e.AddActor("sleeper-0", h0, factory(nil))

	// WHEN the simulation runs
	require.NoError(t, e.Run())

	// THEN it slept the default duration
	assert.Equal(t, 1.0, e.Now())
}

func TestBuiltinSender_TransfersToNamedHost(t *testing.T) {
	// GIVEN a sender targeting the second host
	e, h0, _ := newRunnableEngine(t)
	registerBuiltinFunctions(e)
	factory, err := e.ActorCodeFactory("sender")
	require.NoError(t, err)
	e.AddActor("sender-0", h0, factory([]string{"node-1", "970"}))

	// WHEN the simulation runs
	require.NoError(t, e.Run())

	// THEN the transfer advanced the clock past zero
	assert.Greater(t, e.Now(), 0.0)
}

func TestBuiltinSender_BadArguments_DoNotHang(t *testing.T) {
	// GIVEN senders with missing or invalid arguments
	e, h0, _ := newRunnableEngine(t)
	registerBuiltinFunctions(e)
	factory, err := e.ActorCodeFactory("sender")
	require.NoError(t, err)
	e.AddActor("no-args", h0, factory(nil))
	e.AddActor("bad-host", h0, factory([]string{"ghost", "10"}))
	e.AddActor("bad-size", h0, factory([]string{"node-1", "lots"}))

	// WHEN the simulation runs
	// THEN every malformed actor returns instead of blocking the run
	require.NoError(t, e.Run())
	assert.Equal(t, sim.Quiescent, e.State())
}
