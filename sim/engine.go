// Engine: the authoritative simulation context. It owns the clock, the
// name-keyed entity registries (hosts, links, storages, netpoints), the
// routing-zone root, the live actor set, the instantiated models, and the
// future event set. Tests construct independent engines; a thin process-wide
// accessor offers the first-created one for convenience.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Webcretaire/simgrid/sim/profile"
	"github.com/Webcretaire/simgrid/sim/resource"
)

// namedRegistry keeps name-keyed entities in registration order.
// Registration and unregistration are the only legal way entities enter and
// leave visibility; unregistering an absent name is a no-op.
type namedRegistry[T any] struct {
	byName map[string]T
	order  []string
}

func (r *namedRegistry[T]) register(name string, v T) {
	if r.byName == nil {
		r.byName = make(map[string]T)
	}
	if _, dup := r.byName[name]; !dup {
		r.order = append(r.order, name)
	}
	r.byName[name] = v
}

func (r *namedRegistry[T]) unregister(name string) {
	if _, ok := r.byName[name]; !ok {
		return
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *namedRegistry[T]) get(name string) (T, bool) {
	v, ok := r.byName[name]
	return v, ok
}

func (r *namedRegistry[T]) all() []T {
	out := make([]T, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

func (r *namedRegistry[T]) filtered(pred func(T) bool) []T {
	var out []T
	for _, name := range r.order {
		if v := r.byName[name]; pred(v) {
			out = append(out, v)
		}
	}
	return out
}

func (r *namedRegistry[T]) count() int { return len(r.byName) }

func (r *namedRegistry[T]) clear() {
	r.byName = nil
	r.order = nil
}

// RunState is the run loop's lifecycle state.
type RunState int

const (
	// Idle: Run has not been called since construction or the last reset.
	Idle RunState = iota
	// Running: the run loop is executing.
	Running
	// Quiescent: normal termination, every actor completed.
	Quiescent
	// Deadlocked: actors remain blocked but no event can ever unblock them.
	Deadlocked
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Quiescent:
		return "quiescent"
	case Deadlocked:
		return "deadlocked"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// Engine is the simulation context. Exactly one is usually created per
// process (see Instance), but independent engines are legal and isolated.
//
// All Engine methods must be called from the scheduling thread: either
// outside Run entirely, or from actor code driven by the run loop. The step
// function is never reentered concurrently.
type Engine struct {
	now   float64
	state RunState

	hosts     namedRegistry[*Host]
	links     namedRegistry[*Link]
	storages  namedRegistry[*Storage]
	netpoints namedRegistry[*NetPoint]

	netzoneRoot *NetZone

	actors   []*Actor // alive actors, creation order
	runnable []*Actor
	current  *Actor

	models       []resource.Model // all existing models, for deterministic teardown
	cpuModel     resource.CPUModel
	networkModel resource.NetworkModel
	hostModel    resource.HostModel
	diskModel    resource.DiskModel
	storageModel resource.StorageModel
	modelsReady  bool

	fes *profile.FutureEvtSet

	selection map[string]string // configuration key -> selected name

	storageTypes namedRegistry[*StorageType]
	watchedHosts map[string]struct{}

	entries      map[string]ActorFactory
	entryOrder   []string
	defaultEntry ActorFactory

	onPlatformCreation Signal
	onPlatformCreated  Signal
	onSimulationEnd    Signal
	onDeadlock         Signal
	onTimeAdvance      TimeSignal
}

// instance is the process-wide default engine: the first one created since
// the last Exit. Correctness never depends on it; it only backs Instance().
var instance *Engine

// NewEngine creates an empty simulation context with the clock at zero. The
// first engine created becomes the process-wide instance. Configuration
// options staged by Init (--cfg=key:value) are applied to it.
func NewEngine() *Engine {
	e := &Engine{
		fes:          profile.NewFutureEvtSet(),
		selection:    make(map[string]string),
		watchedHosts: make(map[string]struct{}),
		entries:      make(map[string]ActorFactory),
	}
	if instance == nil {
		instance = e
		for _, opt := range pendingConfig {
			if err := e.SetConfig(opt); err != nil {
				logrus.Fatalf("invalid --cfg option: %v", err)
			}
		}
	}
	return e
}

// Instance returns the process-wide engine. It panics when no engine exists:
// callers needing one before NewEngine ran hold a programming error.
func Instance() *Engine {
	if instance == nil {
		panic("sim.Instance: no engine was created")
	}
	return instance
}

// IsInitialized reports whether a process-wide engine currently exists.
func IsInitialized() bool { return instance != nil }

// Now returns the current simulation time, in seconds.
func (e *Engine) Now() float64 { return e.now }

// State returns the run loop state.
func (e *Engine) State() RunState { return e.state }

// Schedule inserts a future event firing at the given date. The kernel's own
// timers (sleeps, wait timeouts) and trace replay go through here too.
func (e *Engine) Schedule(date float64, apply func(now float64)) {
	e.fes.Insert(date, apply)
}

// Hosts.

// RegisterHost makes a host visible by name. Paired with UnregisterHost.
func (e *Engine) RegisterHost(h *Host) { e.hosts.register(h.name, h) }

// UnregisterHost removes a host from visibility. Absent names are a no-op.
func (e *Engine) UnregisterHost(name string) { e.hosts.unregister(name) }

// HostByName returns the named host, panicking on a miss: use it where
// absence is a configuration bug.
func (e *Engine) HostByName(name string) *Host {
	h, ok := e.hosts.get(name)
	if !ok {
		panic(fmt.Sprintf("no host named %q in the platform", name))
	}
	return h
}

// HostByNameOrNil returns the named host, or nil where absence is expected.
func (e *Engine) HostByNameOrNil(name string) *Host {
	h, _ := e.hosts.get(name)
	return h
}

// AllHosts returns a snapshot of every host, in registration order.
func (e *Engine) AllHosts() []*Host { return e.hosts.all() }

// FilteredHosts returns the hosts matching pred, preserving registry order.
func (e *Engine) FilteredHosts(pred func(*Host) bool) []*Host { return e.hosts.filtered(pred) }

// HostCount returns the number of registered hosts.
func (e *Engine) HostCount() int { return e.hosts.count() }

// Links.

// RegisterLink makes a link visible by name.
func (e *Engine) RegisterLink(l *Link) { e.links.register(l.name, l) }

// UnregisterLink removes a link from visibility. Absent names are a no-op.
func (e *Engine) UnregisterLink(name string) { e.links.unregister(name) }

// LinkByName returns the named link, panicking on a miss.
func (e *Engine) LinkByName(name string) *Link {
	l, ok := e.links.get(name)
	if !ok {
		panic(fmt.Sprintf("no link named %q in the platform", name))
	}
	return l
}

// LinkByNameOrNil returns the named link, or nil.
func (e *Engine) LinkByNameOrNil(name string) *Link {
	l, _ := e.links.get(name)
	return l
}

// AllLinks returns a snapshot of every link, in registration order.
func (e *Engine) AllLinks() []*Link { return e.links.all() }

// FilteredLinks returns the links matching pred, preserving registry order.
func (e *Engine) FilteredLinks(pred func(*Link) bool) []*Link { return e.links.filtered(pred) }

// LinkCount returns the number of registered links.
func (e *Engine) LinkCount() int { return e.links.count() }

// Storages.

// RegisterStorage makes a storage visible by name.
func (e *Engine) RegisterStorage(s *Storage) { e.storages.register(s.name, s) }

// UnregisterStorage removes a storage from visibility. Absent names are a no-op.
func (e *Engine) UnregisterStorage(name string) { e.storages.unregister(name) }

// StorageByName returns the named storage, panicking on a miss.
func (e *Engine) StorageByName(name string) *Storage {
	s, ok := e.storages.get(name)
	if !ok {
		panic(fmt.Sprintf("no storage named %q in the platform", name))
	}
	return s
}

// StorageByNameOrNil returns the named storage, or nil.
func (e *Engine) StorageByNameOrNil(name string) *Storage {
	s, _ := e.storages.get(name)
	return s
}

// AllStorages returns a snapshot of every storage, in registration order.
func (e *Engine) AllStorages() []*Storage { return e.storages.all() }

// StorageCount returns the number of registered storages.
func (e *Engine) StorageCount() int { return e.storages.count() }

// Netpoints.

// RegisterNetpoint makes a routing netpoint visible by name.
func (e *Engine) RegisterNetpoint(p *NetPoint) { e.netpoints.register(p.name, p) }

// UnregisterNetpoint removes a netpoint. Absent names are a no-op.
func (e *Engine) UnregisterNetpoint(name string) { e.netpoints.unregister(name) }

// NetpointByNameOrNil returns the named netpoint, or nil.
func (e *Engine) NetpointByNameOrNil(name string) *NetPoint {
	p, _ := e.netpoints.get(name)
	return p
}

// AllNetpoints returns a snapshot of every netpoint, in registration order.
func (e *Engine) AllNetpoints() []*NetPoint { return e.netpoints.all() }

// NetpointCount returns the number of registered netpoints.
func (e *Engine) NetpointCount() int { return e.netpoints.count() }

// Routing zones.

// SetNetzoneRoot installs the root of the routing-zone hierarchy. It is set
// exactly once per platform load; a second call is a programming error.
func (e *Engine) SetNetzoneRoot(z *NetZone) {
	if e.netzoneRoot != nil {
		panic("netzone root is already set")
	}
	e.netzoneRoot = z
}

// NetzoneRoot returns the root zone, or nil before the platform is built.
func (e *Engine) NetzoneRoot() *NetZone { return e.netzoneRoot }

// NetzoneByNameOrNil searches the whole zone tree for a zone by name.
func (e *Engine) NetzoneByNameOrNil(name string) *NetZone {
	return e.netzoneRoot.findByName(name)
}

// FilteredNetZones collects every descendant zone matching the filter, in a
// root-to-leaves post-order traversal: children are visited before their
// parent is tested. The root itself is never tested.
func (e *Engine) FilteredNetZones(match func(*NetZone) bool) []*NetZone {
	var out []*NetZone
	if e.netzoneRoot != nil {
		filteredNetzonesRecursive(e.netzoneRoot, match, &out)
	}
	return out
}

func filteredNetzonesRecursive(current *NetZone, match func(*NetZone) bool, out *[]*NetZone) {
	for _, child := range current.children {
		filteredNetzonesRecursive(child, match, out)
		if match(child) {
			*out = append(*out, child)
		}
	}
}

// Actors.

// AllActors returns a snapshot of every alive actor, in creation order. The
// registry holds back-references only: it never extends an actor's lifetime
// past its natural termination.
func (e *Engine) AllActors() []*Actor {
	return append([]*Actor(nil), e.actors...)
}

// FilteredActors returns the alive actors matching pred, in creation order.
func (e *Engine) FilteredActors(pred func(*Actor) bool) []*Actor {
	var out []*Actor
	for _, a := range e.actors {
		if pred(a) {
			out = append(out, a)
		}
	}
	return out
}

// ActorCount returns the number of alive actors.
func (e *Engine) ActorCount() int { return len(e.actors) }

// Watched hosts: hosts whose restart the embedding wants notified about.

// WatchHost marks a host name as watched.
func (e *Engine) WatchHost(name string) { e.watchedHosts[name] = struct{}{} }

// IsHostWatched reports whether the name is on the watch list.
func (e *Engine) IsHostWatched(name string) bool {
	_, ok := e.watchedHosts[name]
	return ok
}

// Storage types.

// RegisterStorageType records storage-type metadata parsed from the
// platform. Released during shutdown phase 2, before model destruction.
func (e *Engine) RegisterStorageType(st *StorageType) { e.storageTypes.register(st.ID, st) }

// StorageTypeByNameOrNil returns the named storage type, or nil.
func (e *Engine) StorageTypeByNameOrNil(id string) *StorageType {
	st, _ := e.storageTypes.get(id)
	return st
}

// AllStorageTypes returns every storage type, in registration order.
func (e *Engine) AllStorageTypes() []*StorageType { return e.storageTypes.all() }

// Notifications.

// OnPlatformCreation subscribes to "platform about to be built".
func (e *Engine) OnPlatformCreation(fn func()) { e.onPlatformCreation.Connect(fn) }

// OnPlatformCreated subscribes to "platform built".
func (e *Engine) OnPlatformCreated(fn func()) { e.onPlatformCreated.Connect(fn) }

// OnSimulationEnd subscribes to the end of the main loop.
func (e *Engine) OnSimulationEnd(fn func()) { e.onSimulationEnd.Connect(fn) }

// OnTimeAdvance subscribes to clock jumps; fn receives the new time.
func (e *Engine) OnTimeAdvance(fn func(float64)) { e.onTimeAdvance.Connect(fn) }

// OnDeadlock subscribes to inter-actor deadlock detection.
func (e *Engine) OnDeadlock(fn func()) { e.onDeadlock.Connect(fn) }

// NotifyPlatformCreation fires the platform-about-to-be-built notification.
// Called by platform loaders after configuration, before resource creation.
func (e *Engine) NotifyPlatformCreation() { e.onPlatformCreation.emit() }

// NotifyPlatformCreated fires the platform-built notification.
func (e *Engine) NotifyPlatformCreated() { e.onPlatformCreated.emit() }

// Shutdown releases every actor, entity, and zone of this engine. Models and
// storage types survive it: the lifecycle manager destroys those in its own
// ordered phases. The clock keeps its value so diagnostics printed during
// teardown still see a meaningful time.
func (e *Engine) Shutdown() {
	// Kill alive actors; each is parked and unwinds on its next resume.
	for len(e.actors) > 0 {
		a := e.actors[0]
		a.killed = true
		a.resume <- struct{}{}
		<-a.yielded
	}
	e.runnable = nil
	e.current = nil

	e.hosts.clear()
	e.links.clear()
	e.storages.clear()
	e.netpoints.clear()
	e.netzoneRoot = nil
	e.fes.Clear()
	e.state = Idle

	if instance == e {
		instance = nil
	}
}
