// Package sim is the discrete-event simulation kernel: it coordinates model
// plugins, the future event set, the cooperative actor scheduler, and the
// routing hierarchy under strict ordering and lifecycle rules.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - engine.go: the simulation context (clock, entity registries, zones, signals)
//   - runloop.go: the event loop alternating actor execution and clock advances
//   - actor.go: cooperative actors and their suspension/resume handshake
//
// # Architecture
//
// The sim package defines the kernel and its interfaces; implementations live
// in sub-packages:
//   - sim/resource/: Action lifecycle and the Full/Lazy recomputation strategies
//   - sim/profile/: future event set and trace-driven availability profiles
//   - sim/models/: built-in CPU/network/disk/storage models
//   - sim/platform/: YAML platform and deployment loaders
//   - sim/telemetry/: Prometheus collector fed by engine notifications
//
// sim/models registers its implementations into the catalogs (registry.go)
// via an init() function; selecting one happens through the configuration
// surface (config.go) and instantiation through Engine.SetupModels.
//
// # Scheduling model
//
// Scheduling is single-threaded cooperative. Each actor owns a goroutine but
// exactly one ever runs: the run loop resumes an actor and blocks until it
// suspends at a blocking activity, an explicit yield, or termination.
// Activities completing at the same simulated time all wake their actors
// before any of them executes again.
//
// # Lifecycle
//
// Init guards process-wide setup; Exit tears down in six ordered phases
// (lifecycle.go). Engines are explicit values: tests build as many
// independent ones as they like, and Instance() merely returns the first one
// created for embeddings that want a process-wide default.
package sim
