// YAML deployment loader: places actors on hosts using the functions
// registered on the engine.

package platform

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Webcretaire/simgrid/sim"
)

// DeploymentSpec is the top-level deployment description.
type DeploymentSpec struct {
	Actors []ActorSpec `yaml:"actors"`
}

// ActorSpec places one actor: function names a registered entry (or falls
// back to the default entry), args are passed to the entry's factory.
type ActorSpec struct {
	Name     string   `yaml:"name,omitempty"` // defaults to the function name
	Host     string   `yaml:"host"`
	Function string   `yaml:"function"`
	Args     []string `yaml:"args,omitempty"`
}

// LoadDeploymentSpec parses a deployment file, resolved against the kernel's
// search path. Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadDeploymentSpec(path string) (*DeploymentSpec, error) {
	resolved, err := ResolveFile(path, sim.SearchPath())
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading deployment: %w", err)
	}
	var spec DeploymentSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing deployment %s: %w", resolved, err)
	}
	return &spec, nil
}

// LoadDeployment loads a deployment file and creates its actors on the
// engine. Every host and function must already be known.
func LoadDeployment(e *sim.Engine, path string) error {
	spec, err := LoadDeploymentSpec(path)
	if err != nil {
		return err
	}
	for i, as := range spec.Actors {
		if as.Host == "" || as.Function == "" {
			return fmt.Errorf("deployment actor #%d: host and function are required", i)
		}
		host := e.HostByNameOrNil(as.Host)
		if host == nil {
			return fmt.Errorf("deployment actor %q: unknown host %q", as.Function, as.Host)
		}
		factory, err := e.ActorCodeFactory(as.Function)
		if err != nil {
			return err
		}
		name := as.Name
		if name == "" {
			name = as.Function
		}
		e.AddActor(name, host, factory(as.Args))
	}
	logrus.Debugf("deployment loaded: %d actor(s)", len(spec.Actors))
	return nil
}
