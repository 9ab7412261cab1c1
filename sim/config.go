// String-keyed configuration surface ("family/model:Name") resolved against
// the model catalogs, and the model instantiation step performed at
// platform-build time.

package sim

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Webcretaire/simgrid/sim/resource"
)

// Configuration keys, in the order they are enumerated in error messages.
var configKeys = []string{
	"cpu/model",
	"network/model",
	"host/model",
	"disk/model",
	"storage/model",
	"cpu/optim",
	"network/optim",
	"plugin",
}

// Family defaults, applied when no option selected a model explicitly.
const (
	defaultCPUModel     = "Cas01"
	defaultNetworkModel = "LV08"
	defaultHostModel    = "default"
	defaultDiskModel    = "default"
	defaultStorageModel = "default"
	defaultOptimization = "Lazy"
)

func catalogForKey(key string) *Catalog {
	switch key {
	case "cpu/model":
		return CPUModels
	case "network/model":
		return NetworkModels
	case "host/model":
		return HostModels
	case "disk/model":
		return DiskModels
	case "storage/model":
		return StorageModels
	case "cpu/optim", "network/optim":
		return OptimizationModes
	default:
		return nil
	}
}

// SetConfig applies one "key:value" option. Model and optimization keys are
// validated immediately against their catalog, so a typo fails here with the
// full list of valid names; the instance itself is only built at
// platform-build time. The "plugin" key resolves and initializes a plugin on
// the spot, before model selection occurs.
func (e *Engine) SetConfig(opt string) error {
	key, value, found := strings.Cut(opt, ":")
	if !found {
		return fmt.Errorf("configuration option %q: want \"key:value\"", opt)
	}
	if key == "plugin" {
		plugin, err := PluginByName(value)
		if err != nil {
			return err
		}
		plugin.Init()
		return nil
	}
	catalog := catalogForKey(key)
	if catalog == nil {
		return &ConfigurationError{Kind: "configuration key", Name: key, Valid: configKeys}
	}
	if _, err := catalog.Find(value); err != nil {
		return err
	}
	e.selection[key] = value
	return nil
}

// selected returns the configured name for a key, or its default.
func (e *Engine) selected(key, fallback string) string {
	if name, ok := e.selection[key]; ok {
		return name
	}
	return fallback
}

func (e *Engine) optimizationMode(key string) (resource.UpdateMode, error) {
	name := e.selected(key, defaultOptimization)
	entry, err := OptimizationModes.Find(name)
	if err != nil {
		return resource.Full, err
	}
	switch entry.Name {
	case "Lazy":
		return resource.Lazy, nil
	case "Full":
		return resource.Full, nil
	default:
		return resource.Full, fmt.Errorf("optimization mode %q is described but not usable for %s", entry.Name, key)
	}
}

// SetupModels resolves the selected model of every resource family against
// the catalogs and instantiates them. Idempotent; platform loaders call it
// once before creating resources. Every instance is also appended to the
// engine's all-existing-models list, which exists purely so teardown destroys
// each model exactly once, in creation order.
func (e *Engine) SetupModels() error {
	if e.modelsReady {
		return nil
	}

	cpuMode, err := e.optimizationMode("cpu/optim")
	if err != nil {
		return err
	}
	netMode, err := e.optimizationMode("network/optim")
	if err != nil {
		return err
	}

	build := func(c *Catalog, name string, mode resource.UpdateMode) (resource.Model, error) {
		entry, err := c.Find(name)
		if err != nil {
			return nil, err
		}
		if entry.Build == nil {
			return nil, fmt.Errorf("%s %q cannot be instantiated", c.kind, name)
		}
		m, err := entry.Build(mode)
		if err != nil {
			return nil, err
		}
		e.models = append(e.models, m)
		return m, nil
	}

	m, err := build(CPUModels, e.selected("cpu/model", defaultCPUModel), cpuMode)
	if err != nil {
		return err
	}
	cpu, ok := m.(resource.CPUModel)
	if !ok {
		return fmt.Errorf("model %q does not implement the CPU model capability", m.Name())
	}
	e.cpuModel = cpu

	m, err = build(NetworkModels, e.selected("network/model", defaultNetworkModel), netMode)
	if err != nil {
		return err
	}
	network, ok := m.(resource.NetworkModel)
	if !ok {
		return fmt.Errorf("model %q does not implement the network model capability", m.Name())
	}
	e.networkModel = network

	m, err = build(HostModels, e.selected("host/model", defaultHostModel), resource.Full)
	if err != nil {
		return err
	}
	host, ok := m.(resource.HostModel)
	if !ok {
		return fmt.Errorf("model %q does not implement the host model capability", m.Name())
	}
	e.hostModel = host

	m, err = build(DiskModels, e.selected("disk/model", defaultDiskModel), resource.Full)
	if err != nil {
		return err
	}
	disk, ok := m.(resource.DiskModel)
	if !ok {
		return fmt.Errorf("model %q does not implement the disk model capability", m.Name())
	}
	e.diskModel = disk

	m, err = build(StorageModels, e.selected("storage/model", defaultStorageModel), resource.Full)
	if err != nil {
		return err
	}
	storage, ok := m.(resource.StorageModel)
	if !ok {
		return fmt.Errorf("model %q does not implement the storage model capability", m.Name())
	}
	e.storageModel = storage

	e.modelsReady = true
	logrus.Debugf("models instantiated: cpu=%s network=%s host=%s disk=%s storage=%s",
		e.cpuModel.Name(), e.networkModel.Name(), e.hostModel.Name(), e.diskModel.Name(), e.storageModel.Name())
	return nil
}

// Models returns the all-existing-models list, in creation order. Held for
// deterministic teardown, not for dispatch.
func (e *Engine) Models() []resource.Model {
	return append([]resource.Model(nil), e.models...)
}
