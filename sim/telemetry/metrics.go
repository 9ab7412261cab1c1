// Package telemetry exposes kernel progress as Prometheus metrics. The
// collector subscribes to engine signals, so instrumentation stays out of the
// scheduling loop itself.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Webcretaire/simgrid/sim"
)

// KernelCollector bundles the Prometheus metrics of one engine and provides
// a ready-made /metrics handler.
type KernelCollector struct {
	gatherer prometheus.Gatherer

	Clock            prometheus.Gauge
	ActorsAlive      prometheus.Gauge
	TimeAdvances     prometheus.Counter
	Deadlocks        prometheus.Counter
	SimulationsEnded prometheus.Counter
}

// NewKernelCollector registers the kernel metrics against the provided
// registerer (defaulting to the global Prometheus registry when nil) and
// subscribes them to the engine's signals.
func NewKernelCollector(reg prometheus.Registerer, e *sim.Engine) (*KernelCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &KernelCollector{
		gatherer: gatherer,
		Clock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simulation_clock_seconds",
			Help: "Current simulated time.",
		}),
		ActorsAlive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simulation_actors_alive",
			Help: "Number of actors not yet terminated.",
		}),
		TimeAdvances: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simulation_time_advances_total",
			Help: "Number of times the simulated clock moved forward.",
		}),
		Deadlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simulation_deadlocks_total",
			Help: "Number of runs that ended with blocked actors and no pending event.",
		}),
		SimulationsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "simulations_ended_total",
			Help: "Number of runs that reached quiescence.",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.Clock, c.ActorsAlive, c.TimeAdvances, c.Deadlocks, c.SimulationsEnded,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	e.OnTimeAdvance(func(t float64) {
		c.Clock.Set(t)
		c.ActorsAlive.Set(float64(e.ActorCount()))
		c.TimeAdvances.Inc()
	})
	e.OnDeadlock(func() {
		c.Deadlocks.Inc()
		c.ActorsAlive.Set(float64(e.ActorCount()))
	})
	e.OnSimulationEnd(func() {
		c.SimulationsEnded.Inc()
		c.Clock.Set(e.Now())
		c.ActorsAlive.Set(float64(e.ActorCount()))
	})
	return c, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *KernelCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
