package telemetry

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Webcretaire/simgrid/sim"
	_ "github.com/Webcretaire/simgrid/sim/models"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.FatalLevel)
	}
	os.Exit(m.Run())
}

func newInstrumentedEngine(t *testing.T) (*sim.Engine, *KernelCollector) {
	t.Helper()
	e := sim.NewEngine()
	t.Cleanup(e.Shutdown)
	reg := prometheus.NewRegistry()
	collector, err := NewKernelCollector(reg, e)
	require.NoError(t, err)
	require.NoError(t, e.SetupModels())
	return e, collector
}

func TestKernelCollector_TracksClockAndCompletion(t *testing.T) {
	// GIVEN an instrumented engine with one sleeping actor
	e, collector := newInstrumentedEngine(t)
	root := e.NewNetzoneRoot("root", "full")
	h := root.AddHost("solo", 100)
	e.AddActor("sleeper", h, func(a *sim.Actor) {
		a.Sleep(2)
	})

	// WHEN the simulation runs to quiescence
	require.NoError(t, e.Run())

	// THEN the clock gauge saw the final time and the run was counted
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.Clock))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.SimulationsEnded))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.ActorsAlive))
	assert.GreaterOrEqual(t, testutil.ToFloat64(collector.TimeAdvances), 1.0)
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.Deadlocks))
}

func TestKernelCollector_CountsDeadlocks(t *testing.T) {
	// GIVEN an instrumented engine heading into a deadlock
	e, collector := newInstrumentedEngine(t)
	root := e.NewNetzoneRoot("root", "full")
	h := root.AddHost("solo", 100)
	e.AddActor("stuck", h, func(a *sim.Actor) { a.Suspend() })

	// WHEN the run deadlocks
	err := e.Run()
	require.Error(t, err)

	// THEN the deadlock counter moved and the stuck actor is still counted
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Deadlocks))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.ActorsAlive))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.SimulationsEnded))
}

func TestKernelCollector_DuplicateRegistration_Errors(t *testing.T) {
	// GIVEN a registry already holding the kernel metrics
	e := sim.NewEngine()
	t.Cleanup(e.Shutdown)
	reg := prometheus.NewRegistry()
	_, err := NewKernelCollector(reg, e)
	require.NoError(t, err)

	// WHEN a second collector targets the same registry
	_, err = NewKernelCollector(reg, e)

	// THEN the collision is surfaced instead of silently double-counting
	assert.Error(t, err)
}

func TestKernelCollector_Handler_ServesMetrics(t *testing.T) {
	// GIVEN an instrumented engine that ran
	e, collector := newInstrumentedEngine(t)
	root := e.NewNetzoneRoot("root", "full")
	h := root.AddHost("solo", 100)
	e.AddActor("sleeper", h, func(a *sim.Actor) { a.Sleep(1) })
	require.NoError(t, e.Run())

	// WHEN the /metrics handler is scraped
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// THEN the exposition carries the kernel series
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "simulation_clock_seconds"), "missing clock gauge in exposition")
	assert.True(t, strings.Contains(body, "simulations_ended_total"), "missing run counter in exposition")
}
