// Built-in disk and storage models: time = size / bandwidth.

package models

import "github.com/Webcretaire/simgrid/sim/resource"

type simpleIO struct {
	*resource.BaseModel
}

func newDiskDefault(mode resource.UpdateMode) (resource.Model, error) {
	return &simpleIO{BaseModel: resource.NewBaseModel("default", mode)}, nil
}

func newStorageDefault(mode resource.UpdateMode) (resource.Model, error) {
	return &simpleIO{BaseModel: resource.NewBaseModel("default", mode)}, nil
}

// IO starts an I/O action of size bytes at the device bandwidth.
func (m *simpleIO) IO(now, bandwidth, size float64) *resource.Action {
	return m.StartAction(now, "io", size, bandwidth, 1)
}
