// Link: a named network resource with a bandwidth and a latency. Routes are
// ordered link sequences held by netzones; a transfer is charged the summed
// latency and the bottleneck bandwidth of its route.

package sim

import "github.com/Webcretaire/simgrid/sim/profile"

// Link is a simulation-visible network link.
type Link struct {
	name      string
	bandwidth float64 // bytes per second
	latency   float64 // seconds
	bwScale   float64 // profile-driven availability factor
	on        bool
	engine    *Engine
	zone      *NetZone
}

// Name returns the link name.
func (l *Link) Name() string { return l.name }

// Bandwidth returns the effective bandwidth: nominal scaled by availability.
func (l *Link) Bandwidth() float64 { return l.bandwidth * l.bwScale }

// Latency returns the link latency in seconds.
func (l *Link) Latency() float64 { return l.latency }

// IsOn reports whether the link is up.
func (l *Link) IsOn() bool { return l.on }

// Zone returns the netzone owning the link.
func (l *Link) Zone() *NetZone { return l.zone }

// TurnOff marks the link down. Transfers started while any route link is
// down fail immediately; in-flight transfers are not retroactively failed
// (contention-level rerouting is a model concern, not a kernel one).
func (l *Link) TurnOff() { l.on = false }

// TurnOn marks the link up.
func (l *Link) TurnOn() { l.on = true }

// SetBandwidthProfile replays an availability profile rescaling the
// bandwidth charged to transfers started after each datapoint.
func (l *Link) SetBandwidthProfile(p *profile.Profile) {
	p.Schedule(l.engine.fes, l.engine.now, func(now, value float64) {
		l.bwScale = value
	})
}

// SetStateProfile replays an on/off profile: value zero is down.
func (l *Link) SetStateProfile(p *profile.Profile) {
	p.Schedule(l.engine.fes, l.engine.now, func(now, value float64) {
		if value == 0 {
			l.TurnOff()
		} else {
			l.TurnOn()
		}
	})
}
