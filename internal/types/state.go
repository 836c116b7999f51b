package types

import (
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"
)

// State represents the fabric state file produced by the state loader.
type State struct {
	APIVersion string             `yaml:"apiVersion"`
	Fabrics    map[string]*Fabric `yaml:"fabric"`
}

func NewStateFromFile(stateFile string) (*State, []error) {
	data, err := os.ReadFile(stateFile)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read state file: %w", err)}
	}

	return NewStateFromBytes(data)
}

func NewStateFromBytes(data []byte) (*State, []error) {
	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, []error{fmt.Errorf("failed to unmarshal state: %w", err)}
	}

	for name, fabric := range state.Fabrics {
		if fabric == nil {
			fabric = &Fabric{}
			state.Fabrics[name] = fabric
		}
		fabric.Name = name
	}

	if valid, errs := state.Validate(); !valid {
		return nil, errs
	}

	return &state, nil
}

// GetFabric returns the named fabric.
func (s *State) GetFabric(name string) (*Fabric, error) {
	fabric, ok := s.Fabrics[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFabricNotFound, name)
	}
	return fabric, nil
}

// FabricNames returns all fabric names in sorted order.
func (s *State) FabricNames() []string {
	names := make([]string, 0, len(s.Fabrics))
	for name := range s.Fabrics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks the guarantees the loader owes the renderer: node names are unique
// across every role of a fabric and VPC indexes are positive and unique. References
// from nodes to VPCs are checked by the renderer itself.
func (s State) Validate() (bool, []error) {
	errs := []error{}

	for _, fabricName := range s.FabricNames() {
		fabric := s.Fabrics[fabricName]

		seenIndexes := map[int]string{}
		for _, vpcName := range fabric.SortedVPCNames() {
			vpc := fabric.VPCs[vpcName]
			if vpc == nil {
				errs = append(errs, fmt.Errorf("fabric %s: vpc %s has no definition", fabricName, vpcName))
				continue
			}
			if vpc.Index <= 0 {
				errs = append(errs, fmt.Errorf("fabric %s: vpc %s must have a positive index, got %d", fabricName, vpcName, vpc.Index))
				continue
			}
			if other, ok := seenIndexes[vpc.Index]; ok {
				errs = append(errs, fmt.Errorf("fabric %s: vpc %s reuses index %d of vpc %s", fabricName, vpcName, vpc.Index, other))
				continue
			}
			seenIndexes[vpc.Index] = vpcName
		}

		seenNodes := map[string]Role{}
		for _, role := range AllRoles() {
			for _, nodeName := range fabric.SortedNodeNames(role) {
				if fabric.NodesForRole(role)[nodeName] == nil {
					errs = append(errs, fmt.Errorf("fabric %s: %s %s has no definition", fabricName, role, nodeName))
					continue
				}
				if other, ok := seenNodes[nodeName]; ok {
					errs = append(errs, fmt.Errorf("fabric %s: node name %s is used by both %s and %s", fabricName, nodeName, other, role))
					continue
				}
				seenNodes[nodeName] = role
			}
		}
	}

	return len(errs) == 0, errs
}
