// Lifecycle manager: process-wide init and the strictly ordered shutdown
// sequence. The order is load-bearing: storage-type metadata and entities may
// reference model instances, so they are released first, and the clock resets
// last so diagnostics printed during teardown still see a meaningful time.

package sim

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Webcretaire/simgrid/sim/profile"
)

var (
	initialized   bool
	pendingConfig []string
	searchPath    []string

	// platformFinalizers reset platform-parse scratch state in shutdown
	// phase 5. Loader packages register theirs from init().
	platformFinalizers []func()

	// exitPhaseHook observes shutdown phases; tests instrument it.
	exitPhaseHook func(phase string)
)

// Model-checking hook points. The kernel only exposes them; an exploration
// engine plugs in from outside.
var (
	// MCActive reports whether a model checker drives this process.
	MCActive bool
	// MCMemoryInit prepares checkpointable memory. Called once from Init
	// when MCActive is set.
	MCMemoryInit func()
)

// Initialized reports whether Init has run since the last Exit.
func Initialized() bool { return initialized }

// Init performs process-wide initialization: a no-op when already
// initialized. args carries command-line options of the embedding program;
// recognized ones are "--log=<level>" and "--cfg=<key>:<value>" (staged and
// applied to the first engine created).
func Init(args []string) {
	if initialized {
		return
	}
	initialized = true

	// Ancillary init: logging defaults.
	for _, arg := range args {
		if level, ok := strings.CutPrefix(arg, "--log="); ok {
			parsed, err := logrus.ParseLevel(level)
			if err != nil {
				logrus.Fatalf("invalid log level %q", level)
			}
			logrus.SetLevel(parsed)
		}
	}

	// Configuration init: stage --cfg options for the first engine.
	for _, arg := range args {
		if opt, ok := strings.CutPrefix(arg, "--cfg="); ok {
			pendingConfig = append(pendingConfig, opt)
		}
	}

	if MCActive && MCMemoryInit != nil {
		MCMemoryInit()
	}
}

// AddSearchPath appends a directory to the ancillary-file search path used
// by the platform loaders.
func AddSearchPath(dir string) {
	searchPath = append(searchPath, dir)
}

// SearchPath returns a snapshot of the search path.
func SearchPath() []string {
	return append([]string(nil), searchPath...)
}

// RegisterPlatformFinalizer registers a reset of platform-parse scratch
// state, run in shutdown phase 5.
func RegisterPlatformFinalizer(fn func()) {
	platformFinalizers = append(platformFinalizers, fn)
}

// Exit tears the process state down in a strict order:
//
//  1. engine shutdown: releases all actors, entities, and zones;
//  2. release storage-type metadata;
//  3. destroy every registered model instance, in creation order;
//  4. finalize the profile manager;
//  5. finalize platform-parse scratch state;
//  6. reset the clock to zero, so a fresh run can follow.
//
// Steps 2 and 3 must not swap: storage types reference models. Step 6 is
// last on purpose.
func Exit() {
	e := instance

	phase := func(name string) {
		if exitPhaseHook != nil {
			exitPhaseHook(name)
		}
	}

	if e != nil {
		phase("engine-shutdown")
		e.Shutdown()

		phase("storage-types")
		e.releaseStorageTypes()

		phase("models")
		for _, m := range e.models {
			m.Destroy()
		}
		e.models = nil
		e.modelsReady = false
	}

	phase("profiles")
	profile.Finalize()

	phase("platform")
	for _, fn := range platformFinalizers {
		fn()
	}

	phase("clock")
	if e != nil {
		e.now = 0
	}

	pendingConfig = nil
	searchPath = nil
	initialized = false
}
