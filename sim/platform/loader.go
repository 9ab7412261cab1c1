// YAML platform loader: turns a platform description into registered
// entities, the routing-zone tree, instantiated models, and scheduled
// availability profiles. The kernel consumes the result through its
// registration API only; nothing here bypasses the registries.

package platform

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Webcretaire/simgrid/sim"
	"github.com/Webcretaire/simgrid/sim/profile"
)

// PlatformSpec is the top-level platform description.
// Loaded from YAML via LoadPlatform(engine, path).
type PlatformSpec struct {
	Netzone      ZoneSpec          `yaml:"netzone"`
	StorageTypes []StorageTypeSpec `yaml:"storage_types,omitempty"`
	Storages     []StorageSpec     `yaml:"storages,omitempty"`
}

// ZoneSpec describes one netzone and its owned resources.
type ZoneSpec struct {
	Name    string      `yaml:"name"`
	Routing string      `yaml:"routing"` // routing refinement, e.g. "full"
	Hosts   []HostSpec  `yaml:"hosts,omitempty"`
	Links   []LinkSpec  `yaml:"links,omitempty"`
	Routers []string    `yaml:"routers,omitempty"`
	Routes  []RouteSpec `yaml:"routes,omitempty"`
	Zones   []ZoneSpec  `yaml:"zones,omitempty"`
}

// HostSpec describes one host.
type HostSpec struct {
	Name         string            `yaml:"name"`
	Speed        float64           `yaml:"speed"` // flops per second
	Properties   map[string]string `yaml:"properties,omitempty"`
	Disks        []DiskSpec        `yaml:"disks,omitempty"`
	SpeedProfile string            `yaml:"speed_profile,omitempty"` // inline profile text
	StateProfile string            `yaml:"state_profile,omitempty"`
}

// DiskSpec describes one host-attached disk.
type DiskSpec struct {
	Name    string  `yaml:"name"`
	ReadBw  float64 `yaml:"read_bw"`
	WriteBw float64 `yaml:"write_bw"`
}

// LinkSpec describes one link.
type LinkSpec struct {
	Name             string  `yaml:"name"`
	Bandwidth        float64 `yaml:"bandwidth"` // bytes per second
	Latency          float64 `yaml:"latency"`   // seconds
	BandwidthProfile string  `yaml:"bandwidth_profile,omitempty"`
	StateProfile     string  `yaml:"state_profile,omitempty"`
}

// RouteSpec declares a symmetric route between two netpoints.
type RouteSpec struct {
	Src   string   `yaml:"src"`
	Dst   string   `yaml:"dst"`
	Links []string `yaml:"links"`
}

// StorageTypeSpec declares storage-type metadata.
type StorageTypeSpec struct {
	ID              string            `yaml:"id"`
	Model           string            `yaml:"model"`
	Content         string            `yaml:"content,omitempty"`
	Properties      map[string]string `yaml:"properties,omitempty"`
	ModelProperties map[string]string `yaml:"model_properties,omitempty"`
}

// StorageSpec declares one storage entity.
type StorageSpec struct {
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type"`
	Attach  string  `yaml:"attach"`
	ReadBw  float64 `yaml:"read_bw"`
	WriteBw float64 `yaml:"write_bw"`
}

// loadedPlatforms is parse scratch state, reset by the kernel's shutdown
// phase 5 through the finalizer registered below.
var loadedPlatforms []string

func init() {
	sim.RegisterPlatformFinalizer(func() {
		loadedPlatforms = nil
	})
}

// LoadedPlatforms returns the platform files loaded since the last shutdown.
func LoadedPlatforms() []string {
	return append([]string(nil), loadedPlatforms...)
}

// LoadSpec parses a platform description file, resolved against the kernel's
// search path. Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSpec(path string) (*PlatformSpec, error) {
	resolved, err := ResolveFile(path, sim.SearchPath())
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading platform: %w", err)
	}
	var spec PlatformSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing platform %s: %w", resolved, err)
	}
	if spec.Netzone.Name == "" {
		return nil, fmt.Errorf("platform %s: missing root netzone", resolved)
	}
	loadedPlatforms = append(loadedPlatforms, resolved)
	return &spec, nil
}

// LoadPlatform loads a platform file and populates the engine: fires the
// platform-creation notification, instantiates the configured models, builds
// the zone tree and its resources, then fires platform-created.
func LoadPlatform(e *sim.Engine, path string) error {
	spec, err := LoadSpec(path)
	if err != nil {
		return err
	}

	e.NotifyPlatformCreation()
	if err := e.SetupModels(); err != nil {
		return err
	}

	root := e.NewNetzoneRoot(spec.Netzone.Name, spec.Netzone.Routing)
	if err := buildZone(e, root, &spec.Netzone); err != nil {
		return err
	}

	for _, ts := range spec.StorageTypes {
		e.RegisterStorageType(&sim.StorageType{
			ID:              ts.ID,
			Model:           ts.Model,
			Content:         ts.Content,
			Properties:      ts.Properties,
			ModelProperties: ts.ModelProperties,
		})
	}
	for _, ss := range spec.Storages {
		if _, err := e.AddStorage(ss.Name, ss.Type, ss.Attach, ss.ReadBw, ss.WriteBw); err != nil {
			return err
		}
	}

	e.NotifyPlatformCreated()
	logrus.Debugf("platform loaded: %d host(s), %d link(s), %d storage(s)",
		e.HostCount(), e.LinkCount(), e.StorageCount())
	return nil
}

func buildZone(e *sim.Engine, zone *sim.NetZone, spec *ZoneSpec) error {
	for _, hs := range spec.Hosts {
		if hs.Speed <= 0 {
			return fmt.Errorf("host %q: speed must be positive, got %g", hs.Name, hs.Speed)
		}
		h := zone.AddHost(hs.Name, hs.Speed)
		for key, value := range hs.Properties {
			h.SetProperty(key, value)
		}
		for _, ds := range hs.Disks {
			h.AddDisk(ds.Name, ds.ReadBw, ds.WriteBw)
		}
		if hs.SpeedProfile != "" {
			p, err := profile.Parse(hs.Name+"-speed", hs.SpeedProfile)
			if err != nil {
				return err
			}
			h.SetSpeedProfile(p)
		}
		if hs.StateProfile != "" {
			p, err := profile.Parse(hs.Name+"-state", hs.StateProfile)
			if err != nil {
				return err
			}
			h.SetStateProfile(p)
		}
	}

	for _, ls := range spec.Links {
		l := zone.AddLink(ls.Name, ls.Bandwidth, ls.Latency)
		if ls.BandwidthProfile != "" {
			p, err := profile.Parse(ls.Name+"-bandwidth", ls.BandwidthProfile)
			if err != nil {
				return err
			}
			l.SetBandwidthProfile(p)
		}
		if ls.StateProfile != "" {
			p, err := profile.Parse(ls.Name+"-state", ls.StateProfile)
			if err != nil {
				return err
			}
			l.SetStateProfile(p)
		}
	}

	for _, name := range spec.Routers {
		zone.AddRouter(name)
	}

	for _, child := range spec.Zones {
		sub := zone.NewChild(child.Name, child.Routing)
		if err := buildZone(e, sub, &child); err != nil {
			return err
		}
	}

	// Routes last: they may reference netpoints of child zones.
	for _, rs := range spec.Routes {
		src := e.NetpointByNameOrNil(rs.Src)
		dst := e.NetpointByNameOrNil(rs.Dst)
		if src == nil || dst == nil {
			return fmt.Errorf("route %s->%s: unknown netpoint", rs.Src, rs.Dst)
		}
		links := make([]*sim.Link, 0, len(rs.Links))
		for _, name := range rs.Links {
			l := e.LinkByNameOrNil(name)
			if l == nil {
				return fmt.Errorf("route %s->%s: unknown link %q", rs.Src, rs.Dst, name)
			}
			links = append(links, l)
		}
		zone.AddRoute(src, dst, links)
	}
	return nil
}
