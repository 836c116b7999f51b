package types

import (
	"fmt"
	"strings"
)

const (
	DefaultBaselineOS    = "ubuntu"
	DefaultModulesSource = "./modules"
	DefaultSSHUser       = "ubuntu"

	ImageChannelUnstable = "unstable"
	ImageChannelStable   = "stable"
)

type ImageSettings struct {
	Version    string // Image family version; dots are normalised to dashes.
	Channel    string // "unstable" or a release channel.
	BaselineOS string // OS that needs no qualifier in image names.
}

// NetworkSettings decides, per VPC, whether networking is provisioned by sibling
// modules or adopted from existing infrastructure identified by the external ids.
type NetworkSettings struct {
	NetworkEnabled bool
	SubnetEnabled  bool

	VPCID            string
	SubnetID         string
	SecurityGroupIDs map[string]string // keyed by security module output name, e.g. "sg_orch_id"
}

type BackendSettings struct {
	Enabled bool
	Bucket  string
	Region  string
}

// RenderContext holds the global settings of one render pass. It is never mutated
// while rendering.
type RenderContext struct {
	AWSUseInstanceRole bool

	Image ImageSettings

	SSHPublicKeyFile string
	SSHUser          string

	DNSZone string

	Networks map[string]NetworkSettings

	ModulesSource string
	Production    bool
	BastionIP     string
	StateBackend  BackendSettings
}

// securityGroupProperties are the VPC properties carrying externally supplied security group ids.
var securityGroupProperties = []string{"sg_orch_id", "sg_proxy_id", "sg_proc_id", "sg_wkld_id"}

// NetworkFor returns the network settings of a VPC. VPCs without explicit settings
// get provisioned networking.
func (rc RenderContext) NetworkFor(vpcName string) NetworkSettings {
	if settings, ok := rc.Networks[vpcName]; ok {
		return settings
	}
	return NetworkSettings{NetworkEnabled: true, SubnetEnabled: true}
}

// NormalisedImageVersion turns "3.4" into "3-4", the form used in image names.
func (i ImageSettings) NormalisedImageVersion() string {
	return strings.ReplaceAll(strings.TrimSpace(i.Version), ".", "-")
}

// ImageTag is the channel token exposed to Terraform: "unstable" or "stable".
func (i ImageSettings) ImageTag() string {
	if i.Channel == ImageChannelUnstable {
		return ImageChannelUnstable
	}
	return ImageChannelStable
}

func (i ImageSettings) Baseline() string {
	if i.BaselineOS == "" {
		return DefaultBaselineOS
	}
	return i.BaselineOS
}

func (rc RenderContext) ModulesBase() string {
	if rc.ModulesSource == "" {
		return DefaultModulesSource
	}
	return strings.TrimSuffix(rc.ModulesSource, "/")
}

func (rc RenderContext) User() string {
	if rc.SSHUser == "" {
		return DefaultSSHUser
	}
	return rc.SSHUser
}

// Validate checks the fields every rendered file depends on.
func (rc RenderContext) Validate() (bool, []error) {
	errs := []error{}

	if rc.Image.NormalisedImageVersion() == "" {
		errs = append(errs, fmt.Errorf("%w: image version", ErrMissingRenderField))
	}
	if rc.SSHPublicKeyFile == "" {
		errs = append(errs, fmt.Errorf("%w: ssh public key file", ErrMissingRenderField))
	}
	if rc.StateBackend.Enabled && (rc.StateBackend.Bucket == "" || rc.StateBackend.Region == "") {
		errs = append(errs, fmt.Errorf("%w: state backend bucket and region", ErrMissingRenderField))
	}

	return len(errs) == 0, errs
}

// NetworkSettingsFromVPCs derives per-VPC network settings from VPC properties.
// network_enabled defaults to true; subnet_enabled defaults to network_enabled.
func NetworkSettingsFromVPCs(fabric *Fabric) map[string]NetworkSettings {
	networks := make(map[string]NetworkSettings, len(fabric.VPCs))

	for name, vpc := range fabric.VPCs {
		if vpc == nil {
			continue
		}

		networkEnabled, ok := PropertyBool(vpc.Properties, "network_enabled")
		if !ok {
			networkEnabled = true
		}
		subnetEnabled, ok := PropertyBool(vpc.Properties, "subnet_enabled")
		if !ok {
			subnetEnabled = networkEnabled
		}

		groups := map[string]string{}
		for _, key := range securityGroupProperties {
			if id := PropertyString(vpc.Properties, key); id != "" {
				groups[key] = id
			}
		}

		networks[name] = NetworkSettings{
			NetworkEnabled:   networkEnabled,
			SubnetEnabled:    subnetEnabled,
			VPCID:            PropertyString(vpc.Properties, "vpc_id"),
			SubnetID:         PropertyString(vpc.Properties, "subnet_id"),
			SecurityGroupIDs: groups,
		}
	}

	return networks
}
