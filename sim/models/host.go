// Built-in host models. They coordinate the CPU and network models and own
// no actions of their own.

package models

import "github.com/Webcretaire/simgrid/sim/resource"

type hostModel struct {
	*resource.BaseModel
}

func newHostModel(name string) func(resource.UpdateMode) (resource.Model, error) {
	return func(mode resource.UpdateMode) (resource.Model, error) {
		return &hostModel{BaseModel: resource.NewBaseModel(name, mode)}, nil
	}
}
