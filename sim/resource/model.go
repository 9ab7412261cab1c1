// Package resource defines the model abstraction of the simulation kernel: a
// Model owns a dynamic set of Actions (in-flight resource consumptions) and
// answers, at any simulated time, when the next one completes.
//
// Two recomputation strategies are provided by BaseModel: Full rescans every
// active action on each query, Lazy keeps a min-heap of projected completion
// times and only touches invalidated entries. Both produce identical
// completion orderings and clock trajectories for the same workload.
//
// Concrete models (CPU, network, disk, storage) live in sim/models and are
// registered into the kernel's catalogs via init(), mirroring how the kernel
// package only depends on the interfaces below.
package resource

// UpdateMode selects the recomputation strategy of a model.
type UpdateMode int

const (
	// Full recomputes every active action on each step.
	Full UpdateMode = iota
	// Lazy recomputes only the actions invalidated since the last step,
	// keeping a min-heap of projected completion times.
	Lazy
)

func (m UpdateMode) String() string {
	if m == Lazy {
		return "Lazy"
	}
	return "Full"
}

// Model is the capability set the kernel requires from every resource-sharing
// model. The run loop consults NextOccurringEvent to bound clock advances and
// calls UpdateActionsState after every advance; Destroy is called exactly
// once during kernel shutdown.
type Model interface {
	// Name returns the model's registered name, for diagnostics.
	Name() string
	// NextOccurringEvent returns the completion time of the earliest
	// in-flight action, or a negative value if no action is in flight.
	NextOccurringEvent(now float64) float64
	// UpdateActionsState advances all actions to now (the clock moved by
	// delta) and transitions the completed ones to ActionDone.
	UpdateActionsState(now, delta float64)
	// ActionCount returns the number of in-flight actions.
	ActionCount() int
	// Destroy releases the model. Calling it twice is a programming error.
	Destroy()
}

// CPUModel produces compute actions.
type CPUModel interface {
	Model
	// Execution starts a compute action of flops work on a core of the
	// given effective speed (flops per second).
	Execution(now, speed, flops, priority float64) *Action
}

// NetworkModel produces data-transfer actions.
type NetworkModel interface {
	Model
	// Communication starts a transfer of size bytes over a route with the
	// given total latency (seconds) and bottleneck bandwidth (bytes per
	// second).
	Communication(now, latency, bandwidth, size float64) *Action
}

// DiskModel produces I/O actions on host-attached disks.
type DiskModel interface {
	Model
	// IO starts an I/O action of size bytes at the given bandwidth.
	IO(now, bandwidth, size float64) *Action
}

// StorageModel produces I/O actions on registered storage entities.
type StorageModel interface {
	Model
	// IO starts an I/O action of size bytes at the given bandwidth.
	IO(now, bandwidth, size float64) *Action
}

// HostModel coordinates CPU and network models. The built-in host models own
// no actions of their own; the interface exists so host-level models such as
// parallel-task models can plug in.
type HostModel interface {
	Model
}
