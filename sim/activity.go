// Activities: the actor-facing face of an in-flight Action. An activity
// references the model-owned action without owning it, and is what an actor
// blocks on. Timeouts are ordinary future events racing the action's natural
// completion; whichever fires first wins and the loser is canceled.

package sim

import (
	"fmt"

	"github.com/Webcretaire/simgrid/sim/resource"
)

// ActivityKind distinguishes what an activity consumes.
type ActivityKind int

const (
	// ActivityExec consumes CPU.
	ActivityExec ActivityKind = iota
	// ActivityComm consumes network bandwidth.
	ActivityComm
	// ActivityIo consumes disk or storage bandwidth.
	ActivityIo
)

func (k ActivityKind) String() string {
	switch k {
	case ActivityExec:
		return "exec"
	case ActivityComm:
		return "comm"
	case ActivityIo:
		return "io"
	default:
		return fmt.Sprintf("ActivityKind(%d)", int(k))
	}
}

// Activity wraps one action for actor consumption.
type Activity struct {
	kind     ActivityKind
	name     string
	engine   *Engine
	action   *resource.Action
	waiter   *Actor
	err      error // outcome once terminal: nil, ErrCanceled, ErrTimeout, ErrHostFailure
	timedOut bool
}

// newActivity wires an action into an activity and hooks the terminal
// transition so that waiters are woken deterministically.
func newActivity(e *Engine, kind ActivityKind, name string, action *resource.Action) *Activity {
	act := &Activity{kind: kind, name: name, engine: e, action: action}
	action.OnTerminal(act.onActionTerminal)
	return act
}

// Kind returns what the activity consumes.
func (act *Activity) Kind() ActivityKind { return act.kind }

// Name returns the activity's debugging label.
func (act *Activity) Name() string { return act.name }

// Action returns the underlying model-owned action.
func (act *Activity) Action() *resource.Action { return act.action }

// Test reports whether the activity has reached a terminal state.
func (act *Activity) Test() bool {
	return act.action.State().Terminal()
}

// Outcome returns the terminal outcome: nil for done, ErrCanceled,
// ErrTimeout, or ErrHostFailure. Meaningless before Test reports true.
func (act *Activity) Outcome() error { return act.err }

// Wait blocks the calling actor until the activity terminates and returns
// its outcome. Waiting on an already-terminal activity returns immediately.
func (act *Activity) Wait() error {
	if act.Test() {
		return act.err
	}
	a := act.engine.current
	if a == nil {
		panic("Activity.Wait called outside actor context")
	}
	act.waiter = a
	a.waiting = act
	a.block(fmt.Sprintf("%s %q", act.kind, act.name))
	a.waiting = nil
	return act.err
}

// WaitFor is Wait with a timeout, modeled as a future event racing the
// action. If the timeout fires first the action is canceled and ErrTimeout
// is returned; if the action terminates first the timeout event is defused.
func (act *Activity) WaitFor(timeout float64) error {
	if act.Test() {
		return act.err
	}
	e := act.engine
	e.Schedule(e.now+timeout, func(now float64) {
		if !act.Test() {
			act.timedOut = true
			act.action.Cancel(now)
		}
	})
	return act.Wait()
}

// Cancel cancels the in-flight action. The waiting actor, if any, is woken
// with ErrCanceled; canceling a terminal activity is a no-op.
func (act *Activity) Cancel() {
	act.action.Cancel(act.engine.now)
}

// fail is used by resource failure paths (host turned off).
func (act *Activity) fail() {
	act.action.Fail(act.engine.now)
}

// onActionTerminal translates the action's terminal state into an outcome
// and marks the waiter runnable. The waiter does not execute here: it only
// runs in the next "run ready actors" pass, after every same-time completion
// has been surfaced.
func (act *Activity) onActionTerminal(a *resource.Action) {
	switch a.State() {
	case resource.ActionDone:
		act.err = nil
	case resource.ActionFailed:
		act.err = ErrHostFailure
	case resource.ActionCanceled:
		if act.timedOut {
			act.err = ErrTimeout
		} else {
			act.err = ErrCanceled
		}
	}
	if w := act.waiter; w != nil {
		act.waiter = nil
		act.engine.makeRunnable(w)
	}
}

// dropWaiter detaches a dying actor from the activity and cancels the action
// it was waiting on, so no model keeps computing for nobody.
func (act *Activity) dropWaiter(a *Actor) {
	if act.waiter == a {
		act.waiter = nil
	}
	act.action.Cancel(act.engine.now)
}
