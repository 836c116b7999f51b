package types

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Provider is a target cloud a fabric can be rendered for.
type Provider string

const (
	ProviderAWS   Provider = "aws"
	ProviderGCP   Provider = "gcp"
	ProviderAzure Provider = "azure"
)

// AllProviders returns every supported provider in render order.
func AllProviders() []Provider {
	return []Provider{ProviderAWS, ProviderGCP, ProviderAzure}
}

func (p Provider) IsValid() bool {
	switch p {
	case ProviderAWS, ProviderGCP, ProviderAzure:
		return true
	default:
		return false
	}
}

// VariablePrefix is the short provider token used in variable and file names.
// Azure keeps the historical "azr" spelling so generated names match existing variable files.
func (p Provider) VariablePrefix() string {
	if p == ProviderAzure {
		return "azr"
	}
	return string(p)
}

// ToProvider parses a cloud name as found in the state file. "azr" is accepted for Azure.
func ToProvider(input string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "aws":
		return ProviderAWS, nil
	case "gcp":
		return ProviderGCP, nil
	case "azure", "azr":
		return ProviderAzure, nil
	default:
		return "", fmt.Errorf("unsupported cloud provider: %q", input)
	}
}

// Role is the node role within a fabric.
type Role string

const (
	RoleOrchestrator Role = "orchestrator"
	RoleProcessor    Role = "processor"
	RoleWorkload     Role = "workload"
)

func AllRoles() []Role {
	return []Role{RoleOrchestrator, RoleProcessor, RoleWorkload}
}

// NodeTypeController marks the privileged orchestrator variant.
const NodeTypeController = "controller"

// CloudSet is the set of providers a VPC is deployed to. In YAML it is either a
// single scalar ("aws") or a sequence ([aws, gcp]).
type CloudSet []Provider

func (c CloudSet) Contains(p Provider) bool {
	return slices.Contains(c, p)
}

func (c *CloudSet) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		set, err := NewCloudSet(single)
		if err != nil {
			return err
		}
		*c = set
		return nil
	}

	var many []string
	if err := unmarshal(&many); err != nil {
		return fmt.Errorf("cloud must be a provider name or a list of provider names: %w", err)
	}

	set, err := NewCloudSet(many...)
	if err != nil {
		return err
	}
	*c = set
	return nil
}

// NewCloudSet builds a de-duplicated cloud set from provider names.
func NewCloudSet(names ...string) (CloudSet, error) {
	set := CloudSet{}
	for _, name := range names {
		p, err := ToProvider(name)
		if err != nil {
			return nil, err
		}
		if !set.Contains(p) {
			set = append(set, p)
		}
	}
	return set, nil
}

type FabricConfig struct {
	CompanyName string `yaml:"companyName"`
}

// Fabric is one named network fabric: its VPCs and the nodes of each role.
type Fabric struct {
	Name          string           `yaml:"-"`
	Config        FabricConfig     `yaml:"config"`
	VPCs          map[string]*VPC  `yaml:"vpc"`
	Orchestrators map[string]*Node `yaml:"orchestrator"`
	Processors    map[string]*Node `yaml:"processor"`
	Workloads     map[string]*Node `yaml:"workload"`
}

type VPC struct {
	Index      int            `yaml:"index"`
	Region     string         `yaml:"region"`
	Cloud      CloudSet       `yaml:"cloud"`
	Properties map[string]any `yaml:"properties"`
}

type Node struct {
	Index      int            `yaml:"index"`
	VPC        string         `yaml:"vpc"`
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties"`
}

func (n *Node) IsController() bool {
	return n.Type == NodeTypeController
}

// OSType returns the os_type property, or "" when it is not set.
func (n *Node) OSType() string {
	return PropertyString(n.Properties, "os_type")
}

// DNSEnabled reports the dns_enabled property. The state file historically stores it
// as the string "true"/"false", so both forms are accepted. Absent means disabled.
func (n *Node) DNSEnabled() bool {
	enabled, _ := PropertyBool(n.Properties, "dns_enabled")
	return enabled
}

// NodesForRole returns the node mapping that holds nodes of the given role.
func (f *Fabric) NodesForRole(role Role) map[string]*Node {
	switch role {
	case RoleOrchestrator:
		return f.Orchestrators
	case RoleProcessor:
		return f.Processors
	case RoleWorkload:
		return f.Workloads
	default:
		return nil
	}
}

// SortedNodeNames returns the node names of a role ordered by node index, then name.
func (f *Fabric) SortedNodeNames(role Role) []string {
	nodes := f.NodesForRole(role)
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b string) int {
		if ia, ib := nodeIndex(nodes[a]), nodeIndex(nodes[b]); ia != ib {
			return ia - ib
		}
		return strings.Compare(a, b)
	})

	return names
}

// SortedVPCNames returns the VPC names ordered by VPC index, then name.
func (f *Fabric) SortedVPCNames() []string {
	names := make([]string, 0, len(f.VPCs))
	for name := range f.VPCs {
		names = append(names, name)
	}

	slices.SortFunc(names, func(a, b string) int {
		if ia, ib := vpcIndex(f.VPCs[a]), vpcIndex(f.VPCs[b]); ia != ib {
			return ia - ib
		}
		return strings.Compare(a, b)
	})

	return names
}

func nodeIndex(n *Node) int {
	if n == nil {
		return 0
	}
	return n.Index
}

func vpcIndex(v *VPC) int {
	if v == nil {
		return 0
	}
	return v.Index
}

// LookupVPC returns the VPC a node belongs to, failing with ErrMissingVPC when the
// fabric has no VPC under that name.
func (f *Fabric) LookupVPC(node *Node) (*VPC, error) {
	vpc, ok := f.VPCs[node.VPC]
	if !ok || vpc == nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingVPC, node.VPC)
	}
	return vpc, nil
}

// PropertyString reads a string property, formatting scalars of other types.
func PropertyString(properties map[string]any, key string) string {
	value, ok := properties[key]
	if !ok || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// PropertyBool reads a boolean property stored either as a bool or as a string.
// The second return value is false when the key is absent or unparseable.
func PropertyBool(properties map[string]any, key string) (bool, bool) {
	value, ok := properties[key]
	if !ok || value == nil {
		return false, false
	}

	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}
