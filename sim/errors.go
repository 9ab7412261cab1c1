// Error taxonomy of the kernel boundary. The kernel performs no retries: a
// modeled failure is just an action reaching the failed state, not a kernel
// fault, so everything below is surfaced to the embedding caller.

package sim

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError reports an unknown model, configuration key, or actor
// function name. It always enumerates every valid alternative, in
// registration order, so the message is stable for tooling.
type ConfigurationError struct {
	Kind  string   // what was being resolved, e.g. "network model"
	Name  string   // the offending name
	Valid []string // every valid name, in registration order
}

func (e *ConfigurationError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("%s %q is invalid, and nothing is registered under this kind (this is a bug)", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s %q is invalid. Valid values are: %s.", e.Kind, e.Name, strings.Join(e.Valid, ", "))
}

// VersionMismatchError reports that an embedding program was compiled against
// incompatible kernel headers. No safe continuation is possible.
type VersionMismatchError struct {
	CompiledMajor, CompiledMinor, CompiledPatch int
	LinkedMajor, LinkedMinor, LinkedPatch       int
	Development                                 bool
}

func (e *VersionMismatchError) Error() string {
	msg := fmt.Sprintf("program compiled against version %d.%d.%d but linked against %d.%d.%d",
		e.CompiledMajor, e.CompiledMinor, e.CompiledPatch,
		e.LinkedMajor, e.LinkedMinor, e.LinkedPatch)
	if e.Development {
		msg += " (one of them is a development version and must not be mixed with a stable release)"
	}
	return msg
}

// DeadlockError is returned by Engine.Run when simulated time cannot advance
// while actors remain blocked. Fatal to the current run, not to the process.
type DeadlockError struct {
	Time  float64
	Stuck []string // one line per blocked actor: name and what it waits on
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("deadlock at t=%g: %d actor(s) blocked with no pending event (%s)",
		e.Time, len(e.Stuck), strings.Join(e.Stuck, "; "))
}

// Activity outcomes observed by blocked actors when they wake up.
var (
	// ErrCanceled is returned from a wait when the activity was canceled.
	ErrCanceled = errors.New("activity canceled")
	// ErrTimeout is returned from WaitFor when the timeout fired first.
	ErrTimeout = errors.New("activity wait timed out")
	// ErrHostFailure is returned when the resource carrying the activity
	// was turned off while the activity was in flight.
	ErrHostFailure = errors.New("host failed during activity")
	// ErrNoRoute is returned when no route connects two communicating hosts.
	ErrNoRoute = errors.New("no route between hosts")
)
