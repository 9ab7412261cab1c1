// Actors: cooperatively scheduled units of simulated execution. Each actor
// owns a goroutine, but exactly one ever runs at a time: the run loop resumes
// an actor and blocks until it suspends again, so the whole simulation stays
// effectively single-threaded and deterministic. Suspension points are the
// start of a blocking activity, an explicit yield, and termination.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ActorState tracks where an actor is in its lifecycle.
type ActorState int

const (
	// ActorReady: queued to run at the current simulated time.
	ActorReady ActorState = iota
	// ActorRunning: currently executing (at most one actor at a time).
	ActorRunning
	// ActorBlocked: waiting on an activity, a sleep, or a suspend.
	ActorBlocked
	// ActorTerminated: returned or killed; never resurrected.
	ActorTerminated
)

func (s ActorState) String() string {
	switch s {
	case ActorReady:
		return "ready"
	case ActorRunning:
		return "running"
	case ActorBlocked:
		return "blocked"
	case ActorTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("ActorState(%d)", int(s))
	}
}

// errActorKilled unwinds a killed actor's stack through its own panics.
var errActorKilled = fmt.Errorf("actor killed")

// Actor is one simulated process, pinned to a host.
type Actor struct {
	name   string
	host   *Host
	engine *Engine
	code   func(*Actor)

	state     ActorState
	queued    bool // already sitting in the runnable queue
	killed    bool
	suspended bool
	waiting   *Activity // activity a blocked actor waits on, nil otherwise
	blockedOn string    // human-readable wait description, for deadlock reports

	resume  chan struct{}
	yielded chan struct{}
}

// AddActor creates an actor running code on the given host and marks it
// runnable at the current simulated time.
func (e *Engine) AddActor(name string, host *Host, code func(*Actor)) *Actor {
	a := &Actor{
		name:    name,
		host:    host,
		engine:  e,
		code:    code,
		state:   ActorReady,
		resume:  make(chan struct{}),
		yielded: make(chan struct{}),
	}
	e.actors = append(e.actors, a)
	go a.run()
	e.makeRunnable(a)
	return a
}

// Name returns the actor's name.
func (a *Actor) Name() string { return a.name }

// Host returns the host the actor runs on.
func (a *Actor) Host() *Host { return a.host }

// State returns the actor's lifecycle state.
func (a *Actor) State() ActorState { return a.state }

// Engine returns the simulation context the actor belongs to.
func (a *Actor) Engine() *Engine { return a.engine }

// run is the actor goroutine: park until first resumed, execute the body,
// then unwind. A kill turns the next resume into a panic that the recover
// below absorbs.
func (a *Actor) run() {
	<-a.resume
	func() {
		defer func() {
			if r := recover(); r != nil && r != errActorKilled {
				panic(r)
			}
		}()
		if !a.killed {
			a.state = ActorRunning
			a.code(a)
		}
	}()
	if act := a.waiting; act != nil {
		act.dropWaiter(a)
		a.waiting = nil
	}
	a.state = ActorTerminated
	a.engine.dropActor(a)
	a.yielded <- struct{}{}
}

// halt suspends the actor until the run loop resumes it. Must be called from
// the actor's own goroutine.
func (a *Actor) halt() {
	a.yielded <- struct{}{}
	<-a.resume
	if a.killed {
		panic(errActorKilled)
	}
	a.state = ActorRunning
}

// block suspends the actor with a wait description for deadlock reports.
func (a *Actor) block(what string) {
	a.state = ActorBlocked
	a.blockedOn = what
	a.halt()
	a.blockedOn = ""
}

// Yield suspends the actor and requeues it at the back of the runnable set,
// without advancing the clock.
func (a *Actor) Yield() {
	a.state = ActorReady
	a.engine.makeRunnable(a)
	a.halt()
}

// Sleep blocks the actor for the given amount of simulated time, implemented
// as an ordinary future event.
func (a *Actor) Sleep(duration float64) {
	e := a.engine
	e.Schedule(e.now+duration, func(float64) {
		if a.state == ActorBlocked && !a.suspended {
			e.makeRunnable(a)
		}
	})
	a.block(fmt.Sprintf("sleep(%g)", duration))
}

// Suspend blocks the actor until another actor (or the embedding) resumes
// it. Suspending a terminated actor is a programming error.
func (a *Actor) Suspend() {
	if a.engine.current != a {
		panic(fmt.Sprintf("actor %q: only the actor itself can suspend", a.name))
	}
	a.suspended = true
	a.state = ActorBlocked
	a.blockedOn = "suspended"
	a.halt()
	a.blockedOn = ""
}

// Resume makes a suspended actor runnable again. Resuming an actor that is
// not suspended is a no-op.
func (a *Actor) Resume() {
	if !a.suspended || a.state == ActorTerminated {
		return
	}
	a.suspended = false
	a.engine.makeRunnable(a)
}

// Kill terminates the actor. A parked actor unwinds the next time the run
// loop resumes it; the actor's pending activity, if any, is canceled then.
// Killing yourself unwinds immediately, like Exit.
func (a *Actor) Kill() {
	if a.state == ActorTerminated {
		return
	}
	a.killed = true
	if a == a.engine.current {
		panic(errActorKilled)
	}
	a.suspended = false
	a.engine.makeRunnable(a)
}

// Exit terminates the calling actor immediately.
func (a *Actor) Exit() {
	a.killed = true
	panic(errActorKilled)
}

// Execute runs flops of compute on the actor's host, blocking until done.
func (a *Actor) Execute(flops float64) error {
	return a.ExecAsync(flops).Wait()
}

// ExecAsync starts a compute activity on the actor's host and returns it
// without blocking.
func (a *Actor) ExecAsync(flops float64) *Activity {
	return a.host.execAsync(fmt.Sprintf("%s-exec", a.name), flops)
}

// SendTo transfers bytes from the actor's host to dest, blocking until the
// transfer completes. The route is resolved through the zone hierarchy.
func (a *Actor) SendTo(dest *Host, bytes float64) error {
	act, err := a.SendToAsync(dest, bytes)
	if err != nil {
		return err
	}
	return act.Wait()
}

// SendToAsync starts a transfer to dest and returns the activity.
func (a *Actor) SendToAsync(dest *Host, bytes float64) (*Activity, error) {
	return a.host.sendToAsync(a.name, dest, bytes)
}

// Read reads bytes from a storage, blocking until the I/O completes.
func (a *Actor) Read(st *Storage, bytes float64) error {
	return st.ReadAsync(bytes).Wait()
}

// Write writes bytes to a storage, blocking until the I/O completes.
func (a *Actor) Write(st *Storage, bytes float64) error {
	return st.WriteAsync(bytes).Wait()
}

// DiskRead reads bytes from a host-attached disk, blocking until done.
func (a *Actor) DiskRead(d *Disk, bytes float64) error {
	return d.ReadAsync(bytes).Wait()
}

// DiskWrite writes bytes to a host-attached disk, blocking until done.
func (a *Actor) DiskWrite(d *Disk, bytes float64) error {
	return d.WriteAsync(bytes).Wait()
}

// Scheduler-side plumbing.

// makeRunnable queues an actor for the next "run ready actors" pass. Safe to
// call redundantly; terminated actors are ignored.
func (e *Engine) makeRunnable(a *Actor) {
	if a.state == ActorTerminated || a.queued {
		return
	}
	a.queued = true
	if a.state == ActorBlocked {
		a.state = ActorReady
	}
	e.runnable = append(e.runnable, a)
}

// dropActor removes a terminated actor from the alive set.
func (e *Engine) dropActor(a *Actor) {
	for i, other := range e.actors {
		if other == a {
			e.actors = append(e.actors[:i], e.actors[i+1:]...)
			return
		}
	}
}

// Actor-entry registry: maps deployment actor-class names to factories.

// ActorFactory produces a runnable actor body from deployment arguments.
// Both supported registration shapes normalize to this one.
type ActorFactory func(args []string) func(*Actor)

// RegisterFunction registers the string-slice entry-point shape for a
// deployment actor class.
func (e *Engine) RegisterFunction(name string, code func(a *Actor, args []string)) {
	e.registerEntry(name, func(args []string) func(*Actor) {
		return func(a *Actor) { code(a, args) }
	})
}

// RegisterFunctionArgv registers the POSIX-style (argc, argv) entry-point
// shape. argv[0] is the actor-class name, matching a conventional main.
func (e *Engine) RegisterFunctionArgv(name string, code func(a *Actor, argc int, argv []string)) {
	e.registerEntry(name, func(args []string) func(*Actor) {
		argv := append([]string{name}, args...)
		return func(a *Actor) { code(a, len(argv), argv) }
	})
}

// RegisterDefault installs the fallback factory used when a deployment names
// a class with no explicit registration.
func (e *Engine) RegisterDefault(code func(a *Actor, args []string)) {
	e.defaultEntry = func(args []string) func(*Actor) {
		return func(a *Actor) { code(a, args) }
	}
}

func (e *Engine) registerEntry(name string, factory ActorFactory) {
	if _, dup := e.entries[name]; dup {
		logrus.Warnf("actor function %q registered twice, the new registration wins", name)
	} else {
		e.entryOrder = append(e.entryOrder, name)
	}
	e.entries[name] = factory
}

// ActorCodeFactory resolves a deployment actor-class name to its normalized
// factory, falling back to the default entry. With neither registered the
// deployment is unloadable and a ConfigurationError enumerates the known
// classes.
func (e *Engine) ActorCodeFactory(name string) (ActorFactory, error) {
	if f, ok := e.entries[name]; ok {
		return f, nil
	}
	if e.defaultEntry != nil {
		return e.defaultEntry, nil
	}
	return nil, &ConfigurationError{
		Kind:  "actor function",
		Name:  name,
		Valid: append([]string(nil), e.entryOrder...),
	}
}
