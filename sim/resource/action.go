// Implements Action, the unit of in-flight resource consumption produced by a
// model: one compute slice, one transfer, or one I/O operation.

package resource

import (
	"fmt"
	"math"
)

// ActionState tracks the lifecycle of an Action. Transitions are monotonic:
// a running action moves to exactly one terminal state and is never resurrected.
type ActionState int

const (
	// ActionRunning means the action is consuming its resource.
	ActionRunning ActionState = iota
	// ActionDone means the action completed its full amount of work.
	ActionDone
	// ActionFailed means the owning resource failed while the action was in flight.
	ActionFailed
	// ActionCanceled means the action was canceled before completing.
	ActionCanceled
)

func (s ActionState) String() string {
	switch s {
	case ActionRunning:
		return "running"
	case ActionDone:
		return "done"
	case ActionFailed:
		return "failed"
	case ActionCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("ActionState(%d)", int(s))
	}
}

// Terminal reports whether the state is one of the three terminal states.
func (s ActionState) Terminal() bool {
	return s != ActionRunning
}

// Action represents one in-flight unit of resource consumption. It is owned
// by the model that created it; higher-level activities reference it without
// owning it.
type Action struct {
	model    *BaseModel
	name     string
	priority float64

	remaining  float64 // work units left as of lastSync
	rate       float64 // work units consumed per second
	lastSync   float64 // simulation time at which remaining was last synced
	startTime  float64
	finishTime float64 // projected completion time; +Inf if it can never complete
	state      ActionState

	seq       uint64 // insertion order within the owning model, for stable ties
	heapIndex int    // position in the lazy completion heap; -1 when not queued

	// onTerminal is invoked exactly once, on the transition out of ActionRunning.
	onTerminal func(*Action)
}

// Name returns the debugging label given at start time.
func (a *Action) Name() string { return a.name }

// State returns the current lifecycle state.
func (a *Action) State() ActionState { return a.state }

// Priority returns the sharing weight of the action.
func (a *Action) Priority() float64 { return a.priority }

// StartTime returns the simulation time at which the action was started.
func (a *Action) StartTime() float64 { return a.startTime }

// FinishTime returns the projected (or, once terminal, actual) completion
// time. While running with a zero rate it is +Inf.
func (a *Action) FinishTime() float64 { return a.finishTime }

// Remaining returns the work left at the given time, without mutating the
// action. For a terminal action it returns the remaining amount frozen at the
// moment the action left the running state.
func (a *Action) Remaining(now float64) float64 {
	if a.state.Terminal() {
		return a.remaining
	}
	rem := a.remaining - a.rate*(now-a.lastSync)
	if rem < 0 {
		return 0
	}
	return rem
}

// OnTerminal registers the callback fired when the action reaches a terminal
// state. At most one callback is supported; activities are the only consumer.
func (a *Action) OnTerminal(fn func(*Action)) {
	a.onTerminal = fn
}

// SetRate changes the consumption rate of a running action at time now.
// Remaining work is synced first, then the projected completion time is
// recomputed; in lazy mode the completion heap entry is invalidated and
// reinserted.
func (a *Action) SetRate(now, rate float64) {
	if a.state.Terminal() {
		return
	}
	a.sync(now)
	a.rate = rate
	a.refreshFinishTime()
	a.model.requeue(a)
}

// Cancel transitions a running action to ActionCanceled at time now.
// Canceling a terminal action is a no-op.
func (a *Action) Cancel(now float64) {
	a.model.terminate(a, now, ActionCanceled)
}

// Fail transitions a running action to ActionFailed at time now, typically
// because its resource was turned off. Failing a terminal action is a no-op.
func (a *Action) Fail(now float64) {
	a.model.terminate(a, now, ActionFailed)
}

// sync folds elapsed progress into remaining. Only meaningful while running.
func (a *Action) sync(now float64) {
	a.remaining -= a.rate * (now - a.lastSync)
	if a.remaining < 0 {
		a.remaining = 0
	}
	a.lastSync = now
}

func (a *Action) refreshFinishTime() {
	if a.rate <= 0 {
		a.finishTime = math.Inf(1)
		return
	}
	a.finishTime = a.lastSync + a.remaining/a.rate
}
