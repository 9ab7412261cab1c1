// Built-in CPU models.

package models

import "github.com/Webcretaire/simgrid/sim/resource"

// cas01 is the simplistic CPU model: time = size / power.
type cas01 struct {
	*resource.BaseModel
}

func newCas01(mode resource.UpdateMode) (resource.Model, error) {
	return &cas01{BaseModel: resource.NewBaseModel("Cas01", mode)}, nil
}

// Execution starts a compute action of flops work at the host's effective
// speed, weighted by priority.
func (m *cas01) Execution(now, speed, flops, priority float64) *resource.Action {
	return m.StartAction(now, "execution", flops, speed*priority, priority)
}
