// The run loop: alternate "run every ready actor" and "advance the clock to
// the next relevant event", where the next event is the minimum of every
// model's earliest action completion and the future event set's head.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Run executes the simulation until quiescence or deadlock.
//
// Quiescent is the normal termination: no actor remains and nothing is
// pending. Deadlocked means actors remain blocked while neither any model nor
// the future event set can ever produce a wake-up; it is reported, never
// swallowed. Calling Run again after a terminal state resumes from the
// current state; a full reset requires Exit followed by a fresh engine.
func (e *Engine) Run() error {
	e.state = Running
	for {
		// 1. Run every runnable actor to its next suspension point.
		// Never advances the clock.
		e.runReadyActors()

		// 2. No actor remains: quiescence, the normal end. Pending trace
		// events (periodic profiles, stale wake-ups) change nothing for
		// nobody and must not keep the clock advancing.
		if len(e.actors) == 0 {
			e.state = Quiescent
			logrus.Debugf("simulation reached quiescence at t=%g", e.now)
			e.onSimulationEnd.emit()
			return nil
		}

		// 3. Earliest relevant event across models and trace events.
		tNext, ok := e.nextEventTime()

		// 4. Actors survive but nothing can ever wake them: deadlock.
		if !ok {
			e.state = Deadlocked
			err := e.deadlockError()
			logrus.Errorf("%v", err)
			e.onDeadlock.emit()
			return err
		}

		// 5. Advance the clock, apply every same-time trace event, then
		// let every model mark completed actions done. Woken actors only
		// execute in the next pass of step 1, so no actor observes a
		// partially applied timestep.
		if tNext < e.now {
			tNext = e.now
		}
		delta := tNext - e.now
		e.now = tNext
		e.onTimeAdvance.emit(e.now)
		for _, ev := range e.fes.PopReady(e.now) {
			ev.Apply(e.now)
		}
		for _, m := range e.models {
			m.UpdateActionsState(e.now, delta)
		}
	}
}

// runReadyActors drains the runnable queue in FIFO order. Actors made
// runnable while draining (same-time wake-ups, spawns) run in this same pass.
func (e *Engine) runReadyActors() {
	for len(e.runnable) > 0 {
		a := e.runnable[0]
		e.runnable = e.runnable[1:]
		a.queued = false
		if a.state == ActorTerminated {
			continue
		}
		e.current = a
		a.resume <- struct{}{}
		<-a.yielded
		e.current = nil
	}
}

// nextEventTime returns the minimum of every model's next action completion
// and the future event set's head, or ok=false when neither has anything.
func (e *Engine) nextEventTime() (float64, bool) {
	best, ok := e.fes.PeekNextTime()
	for _, m := range e.models {
		t := m.NextOccurringEvent(e.now)
		if t < 0 {
			continue
		}
		if !ok || t < best {
			best, ok = t, true
		}
	}
	return best, ok
}

// deadlockError describes every surviving actor and what it waits on.
func (e *Engine) deadlockError() *DeadlockError {
	stuck := make([]string, 0, len(e.actors))
	for _, a := range e.actors {
		what := a.blockedOn
		if what == "" {
			what = "not scheduled"
		}
		stuck = append(stuck, fmt.Sprintf("%s@%s: %s", a.name, a.host.Name(), what))
	}
	return &DeadlockError{Time: e.now, Stuck: stuck}
}
