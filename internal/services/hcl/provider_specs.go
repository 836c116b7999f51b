package hcl

import (
	"fmt"

	"github.com/bayware/bwctl/internal/types"
)

// providerSpec captures everything that differs between clouds when instantiating the
// node, networking and security modules.
type providerSpec struct {
	localName string // terraform provider local name
	regional  bool   // modules receive an aliased provider per region; otherwise a location argument

	instanceTypeAttr   string
	diskSizeAttr       string
	networkAttr        string
	networkOutput      string
	subnetAttr         string
	subnetOutput       string
	securityGroupsAttr string
	tagsAttr           string

	defaultInstanceType string
	defaultDiskSize     int

	image imageStrategy
}

var providerSpecs = map[types.Provider]providerSpec{
	types.ProviderAWS: {
		localName:           "aws",
		regional:            true,
		instanceTypeAttr:    "instance_type",
		diskSizeAttr:        "root_volume_size",
		networkAttr:         "vpc_id",
		networkOutput:       "vpc_id",
		subnetAttr:          "subnet_id",
		subnetOutput:        "subnet_id",
		securityGroupsAttr:  "security_group_ids",
		tagsAttr:            "tags",
		defaultInstanceType: "t3.medium",
		defaultDiskSize:     20,
		image:               namePatternImage{attr: "image_name_pattern"},
	},
	types.ProviderGCP: {
		localName:           "google",
		regional:            true,
		instanceTypeAttr:    "machine_type",
		diskSizeAttr:        "boot_disk_size",
		networkAttr:         "network",
		networkOutput:       "network_id",
		subnetAttr:          "subnetwork",
		subnetOutput:        "subnetwork_id",
		securityGroupsAttr:  "firewall_tags",
		tagsAttr:            "labels",
		defaultInstanceType: "n1-standard-2",
		defaultDiskSize:     20,
		image:               freeFormImage{attr: "image"},
	},
	types.ProviderAzure: {
		localName:           "azurerm",
		regional:            false,
		instanceTypeAttr:    "vm_size",
		diskSizeAttr:        "os_disk_size",
		networkAttr:         "virtual_network_id",
		networkOutput:       "vnet_id",
		subnetAttr:          "subnet_id",
		subnetOutput:        "subnet_id",
		securityGroupsAttr:  "network_security_group_ids",
		tagsAttr:            "tags",
		defaultInstanceType: "Standard_B2s",
		defaultDiskSize:     30,
		image:               freeFormImage{attr: "image_name"},
	},
}

func specFor(provider types.Provider) (providerSpec, error) {
	spec, ok := providerSpecs[provider]
	if !ok {
		return providerSpec{}, fmt.Errorf("unsupported provider: %q", provider)
	}
	return spec, nil
}
