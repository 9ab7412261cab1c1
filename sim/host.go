// Host: a named computing resource of the platform, carrying a CPU speed, an
// on/off state, optional availability profiles, attached disks, and a routing
// netpoint.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Webcretaire/simgrid/sim/profile"
)

// Host is a simulation-visible machine.
type Host struct {
	name       string
	speed      float64 // nominal flops per second
	speedScale float64 // profile-driven availability factor
	on         bool
	engine     *Engine
	zone       *NetZone
	netpoint   *NetPoint
	properties map[string]string
	disks      []*Disk
	live       []*Activity // in-flight activities charged to this host
}

// Name returns the host name.
func (h *Host) Name() string { return h.name }

// Speed returns the effective speed: nominal speed scaled by the current
// availability factor.
func (h *Host) Speed() float64 { return h.speed * h.speedScale }

// NominalSpeed returns the platform-declared speed, unscaled.
func (h *Host) NominalSpeed() float64 { return h.speed }

// IsOn reports whether the host is up.
func (h *Host) IsOn() bool { return h.on }

// Netpoint returns the host's attachment point in the routing hierarchy.
func (h *Host) Netpoint() *NetPoint { return h.netpoint }

// Zone returns the netzone the host belongs to.
func (h *Host) Zone() *NetZone { return h.zone }

// Property returns a platform property, or "".
func (h *Host) Property(key string) string { return h.properties[key] }

// SetProperty sets a platform property.
func (h *Host) SetProperty(key, value string) {
	if h.properties == nil {
		h.properties = make(map[string]string)
	}
	h.properties[key] = value
}

// Disks returns the host-attached disks, in attachment order.
func (h *Host) Disks() []*Disk { return append([]*Disk(nil), h.disks...) }

// AddDisk attaches a disk with the given read/write bandwidths (bytes/s).
func (h *Host) AddDisk(name string, readBandwidth, writeBandwidth float64) *Disk {
	d := &Disk{name: name, host: h, readBandwidth: readBandwidth, writeBandwidth: writeBandwidth}
	h.disks = append(h.disks, d)
	return d
}

// TurnOff fails every in-flight activity charged to the host; their waiters
// wake with ErrHostFailure. Turning off an off host is a no-op.
func (h *Host) TurnOff() {
	if !h.on {
		return
	}
	h.on = false
	for _, act := range h.snapshotLive() {
		if !act.Test() {
			act.fail()
		}
	}
	h.live = nil
}

// TurnOn brings the host back up. Restarts of watched hosts are reported.
func (h *Host) TurnOn() {
	if h.on {
		return
	}
	h.on = true
	if h.engine.IsHostWatched(h.name) {
		logrus.Infof("watched host %q restarted at t=%g", h.name, h.engine.now)
	}
}

// SetSpeedProfile replays an availability profile through the future event
// set: each datapoint rescales the host speed and the rate of its in-flight
// compute activities.
func (h *Host) SetSpeedProfile(p *profile.Profile) {
	p.Schedule(h.engine.fes, h.engine.now, func(now, value float64) {
		h.speedScale = value
		for _, act := range h.snapshotLive() {
			if act.kind == ActivityExec && !act.Test() {
				act.action.SetRate(now, h.Speed()*act.action.Priority())
			}
		}
	})
}

// SetStateProfile replays an on/off profile: value zero turns the host off,
// anything else turns it back on.
func (h *Host) SetStateProfile(p *profile.Profile) {
	p.Schedule(h.engine.fes, h.engine.now, func(now, value float64) {
		if value == 0 {
			h.TurnOff()
		} else {
			h.TurnOn()
		}
	})
}

// execAsync starts a compute activity on the host.
func (h *Host) execAsync(name string, flops float64) *Activity {
	e := h.engine
	if !h.on {
		// Start-and-fail keeps the caller on the ordinary outcome path.
		action := e.cpuModel.Execution(e.now, h.Speed(), flops, 1)
		act := newActivity(e, ActivityExec, name, action)
		act.fail()
		return act
	}
	action := e.cpuModel.Execution(e.now, h.Speed(), flops, 1)
	act := newActivity(e, ActivityExec, name, action)
	h.track(act)
	return act
}

// sendToAsync starts a point-to-point transfer from this host to dest.
func (h *Host) sendToAsync(name string, dest *Host, bytes float64) (*Activity, error) {
	e := h.engine
	latency, bandwidth, err := e.routeBetween(h, dest)
	if err != nil {
		return nil, err
	}
	action := e.networkModel.Communication(e.now, latency, bandwidth, bytes)
	act := newActivity(e, ActivityComm, fmt.Sprintf("%s->%s", name, dest.name), action)
	h.track(act)
	return act, nil
}

func (h *Host) track(act *Activity) {
	h.live = append(h.live, act)
}

// snapshotLive prunes terminal activities and returns the remainder.
func (h *Host) snapshotLive() []*Activity {
	kept := h.live[:0]
	for _, act := range h.live {
		if !act.Test() {
			kept = append(kept, act)
		}
	}
	h.live = kept
	return append([]*Activity(nil), kept...)
}

// Disk is a host-attached I/O device served by the disk model.
type Disk struct {
	name           string
	host           *Host
	readBandwidth  float64
	writeBandwidth float64
}

// Name returns the disk name.
func (d *Disk) Name() string { return d.name }

// Host returns the host the disk is attached to.
func (d *Disk) Host() *Host { return d.host }

// ReadAsync starts a read of the given size (bytes).
func (d *Disk) ReadAsync(bytes float64) *Activity {
	e := d.host.engine
	action := e.diskModel.IO(e.now, d.readBandwidth, bytes)
	act := newActivity(e, ActivityIo, fmt.Sprintf("%s-read", d.name), action)
	d.host.track(act)
	return act
}

// WriteAsync starts a write of the given size (bytes).
func (d *Disk) WriteAsync(bytes float64) *Activity {
	e := d.host.engine
	action := e.diskModel.IO(e.now, d.writeBandwidth, bytes)
	act := newActivity(e, ActivityIo, fmt.Sprintf("%s-write", d.name), action)
	d.host.track(act)
	return act
}
