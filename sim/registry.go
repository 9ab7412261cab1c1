// Model registry: one catalog per resource family, each entry carrying a
// name, a human-readable description, and a constructor. Catalogs are built
// once at process start (sim/models registers the built-ins via init()) and
// never mutated during a run.

package sim

import (
	"fmt"
	"io"

	"github.com/Webcretaire/simgrid/sim/resource"
)

// BuildModel constructs a model instance with the requested recomputation
// strategy. Entries that only document a mode carry a nil builder.
type BuildModel func(mode resource.UpdateMode) (resource.Model, error)

// ModelDescription is one catalog entry. Identity is the name, unique within
// its catalog; registering the same name again overrides the earlier entry at
// selection time (later registrations win in Find).
type ModelDescription struct {
	Name        string
	Description string
	Build       BuildModel
}

// Catalog is the ordered set of model descriptions of one resource family.
type Catalog struct {
	kind    string
	entries []ModelDescription
}

// NewCatalog creates an empty catalog. kind names the resource family in
// error messages and help output, e.g. "network model".
func NewCatalog(kind string) *Catalog {
	return &Catalog{kind: kind}
}

// Kind returns the resource-family label of the catalog.
func (c *Catalog) Kind() string { return c.kind }

// Register appends an entry. Duplicate names are legal and mean an override;
// a genuinely conflicting duplicate only surfaces when the name is selected.
func (c *Catalog) Register(name, description string, build BuildModel) {
	c.entries = append(c.entries, ModelDescription{Name: name, Description: description, Build: build})
}

// Names returns every registered name, in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Find resolves a name to its entry. Unknown names yield a
// ConfigurationError enumerating every valid name in registration order.
// When a name was registered more than once the last registration wins.
func (c *Catalog) Find(name string) (*ModelDescription, error) {
	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].Name == name {
			return &c.entries[i], nil
		}
	}
	return nil, &ConfigurationError{Kind: c.kind, Name: name, Valid: c.Names()}
}

// Help writes the long description of every entry, one per line. Pure
// reporting: nothing here resolves to an instance.
func (c *Catalog) Help(w io.Writer) {
	fmt.Fprintf(w, "Long description of the %ss accepted by this simulator:\n", c.kind)
	for _, e := range c.entries {
		fmt.Fprintf(w, "  %s: %s\n", e.Name, e.Description)
	}
}

// Built-in catalogs. sim/models populates them from its init(); plugins may
// append before model selection occurs.
var (
	CPUModels         = NewCatalog("CPU model")
	NetworkModels     = NewCatalog("network model")
	HostModels        = NewCatalog("host model")
	DiskModels        = NewCatalog("disk model")
	StorageModels     = NewCatalog("storage model")
	OptimizationModes = NewCatalog("optimization mode")
)

// PluginDescription describes a kernel plugin: Init runs at platform-build
// time, before model selection, and typically registers extra models.
type PluginDescription struct {
	Name        string
	Description string
	Init        func()
}

// pluginDescriptions is constructed at first use and released exactly once by
// the lifecycle manager at process exit.
var pluginDescriptions []PluginDescription

// AddPluginDescription registers a plugin by name, description, and
// initializer. Called by plugin packages at process start.
func AddPluginDescription(name, description string, init func()) {
	pluginDescriptions = append(pluginDescriptions, PluginDescription{Name: name, Description: description, Init: init})
}

// PluginDescriptions returns the registered plugins, in registration order.
func PluginDescriptions() []PluginDescription {
	return pluginDescriptions
}

// PluginByName resolves a plugin name, with the same enumerated failure shape
// as model lookup.
func PluginByName(name string) (*PluginDescription, error) {
	for i := range pluginDescriptions {
		if pluginDescriptions[i].Name == name {
			return &pluginDescriptions[i], nil
		}
	}
	valid := make([]string, len(pluginDescriptions))
	for i, p := range pluginDescriptions {
		valid[i] = p.Name
	}
	return nil, &ConfigurationError{Kind: "plugin", Name: name, Valid: valid}
}

// FreePluginDescriptions releases the plugin catalog. Unlike Exit this is a
// process-exit finalizer: plugins survive engine shutdown/reinit cycles, so
// embeddings call this once, when the process is really done.
func FreePluginDescriptions() {
	pluginDescriptions = nil
}
