package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitExit_FullCycle_AndReinit(t *testing.T) {
	// GIVEN a full init -> build -> run -> exit cycle
	runOnce := func() {
		Init([]string{"--log=error"})
		require.True(t, Initialized())

		e := newTestEngine(t)
		root := e.NewNetzoneRoot("root", "full")
		h := root.AddHost("solo", 100)
		e.AddActor("worker", h, func(a *Actor) {
			require.NoError(t, a.Execute(100))
		})
		require.NoError(t, e.Run())
		assert.Equal(t, 1.0, e.Now())

		Exit()
		// The clock resets last, so a fresh run starts from zero.
		assert.Equal(t, 0.0, e.Now())
		assert.False(t, Initialized())
	}

	// WHEN the cycle executes twice in one process
	runOnce()

	// THEN a second cycle works from a clean slate
	runOnce()
}

func TestInit_Idempotent(t *testing.T) {
	Init(nil)
	defer Exit()

	// WHEN Init runs again
	Init([]string{"--log=error"})

	// THEN the process is still initialized exactly once
	assert.True(t, Initialized())
}

func TestInit_StagedConfig_AppliesToFirstEngine(t *testing.T) {
	// GIVEN a --cfg option passed at init time
	Init([]string{"--cfg=cpu/model:test-cpu"})
	defer Exit()

	// WHEN the first engine is created
	e := NewEngine()
	defer e.Shutdown()

	// THEN the staged selection took effect
	assert.Equal(t, "test-cpu", e.selected("cpu/model", "unset"))
}

func TestExit_PhaseOrder(t *testing.T) {
	// GIVEN an initialized engine with models, storage types, and a loaded
	// platform scratch finalizer
	Init(nil)
	e := newTestEngine(t)
	e.RegisterStorageType(&StorageType{ID: "ssd", Model: "test-storage"})
	st := e.AllStorageTypes()[0]
	finalized := false
	RegisterPlatformFinalizer(func() { finalized = true })

	var phases []string
	exitPhaseHook = func(phase string) { phases = append(phases, phase) }
	defer func() { exitPhaseHook = nil }()

	// WHEN the process exits
	Exit()

	// THEN teardown runs in its strict order
	assert.Equal(t, []string{
		"engine-shutdown",
		"storage-types",
		"models",
		"profiles",
		"platform",
		"clock",
	}, phases)

	// AND each phase actually happened
	assert.True(t, st.Released())
	assert.True(t, finalized)
	assert.Equal(t, 0.0, e.Now())
	assert.Nil(t, e.Models(), "model list must be cleared after destruction")
}

func TestExit_DestroysEachModelExactlyOnce(t *testing.T) {
	// GIVEN an engine with instantiated models
	Init(nil)
	e := newTestEngine(t)
	models := e.Models()
	require.NotEmpty(t, models)

	// WHEN the process exits
	Exit()

	// THEN every model instance was destroyed; a second Destroy would
	// panic, proving Exit ran exactly one pass
	for _, m := range models {
		assert.Panics(t, func() { m.Destroy() })
	}
}

func TestExit_KillsAliveActors(t *testing.T) {
	// GIVEN a run that deadlocked with a parked actor
	Init(nil)
	e := newTestEngine(t)
	root := e.NewNetzoneRoot("root", "full")
	h := root.AddHost("solo", 100)
	stuck := e.AddActor("stuck", h, func(a *Actor) { a.Suspend() })
	err := e.Run()
	require.Error(t, err)
	require.Equal(t, 1, e.ActorCount())

	// WHEN the process exits
	Exit()

	// THEN the parked actor was unwound and released
	assert.Equal(t, ActorTerminated, stuck.State())
	assert.Equal(t, 0, e.ActorCount())
}

func TestSearchPath_AccumulatesUntilExit(t *testing.T) {
	Init(nil)
	AddSearchPath("/tmp/platforms")
	AddSearchPath("/tmp/more")
	assert.Equal(t, []string{"/tmp/platforms", "/tmp/more"}, SearchPath())

	// Exit clears it with the rest of the process state.
	Exit()
	assert.Empty(t, SearchPath())
}
