// Built-in network models. A transfer's work is its payload plus the latency
// charge folded into work units, so a single action carries both terms.

package models

import (
	"fmt"

	"github.com/Webcretaire/simgrid/sim/resource"
)

// LV08 slow-start correction factors, from the model's calibration.
const (
	lv08LatencyFactor   = 13.01
	lv08BandwidthFactor = 0.97
)

// cm02 is the legacy analytic network model, without corrective factors.
type cm02 struct {
	*resource.BaseModel
	latencyFactor   float64
	bandwidthFactor float64
}

func newCM02(mode resource.UpdateMode) (resource.Model, error) {
	return &cm02{BaseModel: resource.NewBaseModel("CM02", mode), latencyFactor: 1, bandwidthFactor: 1}, nil
}

func newLV08(mode resource.UpdateMode) (resource.Model, error) {
	return &cm02{
		BaseModel:       resource.NewBaseModel("LV08", mode),
		latencyFactor:   lv08LatencyFactor,
		bandwidthFactor: lv08BandwidthFactor,
	}, nil
}

// Communication starts a transfer of size bytes over a route with the given
// latency and bottleneck bandwidth.
func (m *cm02) Communication(now, latency, bandwidth, size float64) *resource.Action {
	rate := bandwidth * m.bandwidthFactor
	work := size
	if rate > 0 {
		work += latency * m.latencyFactor * rate
	}
	return m.StartAction(now, "communication", work, rate, 1)
}

// constant is the simplistic network model where every communication takes
// one second, whatever the payload or route.
type constant struct {
	*resource.BaseModel
}

func newConstant(mode resource.UpdateMode) (resource.Model, error) {
	return &constant{BaseModel: resource.NewBaseModel("Constant", mode)}, nil
}

func (m *constant) Communication(now, latency, bandwidth, size float64) *resource.Action {
	return m.StartAction(now, "communication", 1, 1, 1)
}

// Models that need optional support compiled in. Selecting them fails with an
// explanation instead of silently falling back.
func newSMPI(resource.UpdateMode) (resource.Model, error) {
	return nil, fmt.Errorf("network model \"SMPI\": SMPI support is not built into this kernel")
}

func newIB(resource.UpdateMode) (resource.Model, error) {
	return nil, fmt.Errorf("network model \"IB\": SMPI support is not built into this kernel")
}

func newNS3(resource.UpdateMode) (resource.Model, error) {
	return nil, fmt.Errorf("network model \"ns-3\": ns-3 support is not built into this kernel")
}
