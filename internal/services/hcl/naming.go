package hcl

import (
	"fmt"

	"github.com/bayware/bwctl/internal/types"
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

const (
	SecurityGroupOrchestrator = "sg_orch_id"
	SecurityGroupProxy        = "sg_proxy_id"
	SecurityGroupProcessor    = "sg_proc_id"
	SecurityGroupWorkload     = "sg_wkld_id"
)

// VariableNamespace is the per-VPC variable prefix: provider prefix + "_vpc" + VPC index,
// e.g. aws_vpc1, gcp_vpc2, azr_vpc3. Hand-written variable files follow the same convention.
func VariableNamespace(provider types.Provider, vpcIndex int) string {
	return fmt.Sprintf("%s_vpc%d", provider.VariablePrefix(), vpcIndex)
}

// RoleVariable names a per-role setting inside a VPC namespace, e.g. aws_vpc1_orchestrator_instance_type.
func RoleVariable(namespace string, role types.Role, setting string) string {
	return fmt.Sprintf("%s_%s_%s", namespace, role, setting)
}

// ProviderAlias is the alias of the provider configuration serving a region.
func ProviderAlias(region string) string {
	return utils.FormatHclResourceName(region)
}

func NetworkingModuleName(fabricName, vpcName string, provider types.Provider) string {
	return utils.FormatHclResourceName(fmt.Sprintf("%s_%s_%s_networking", fabricName, vpcName, provider.VariablePrefix()))
}

func SecurityModuleName(fabricName, vpcName string, provider types.Provider) string {
	return utils.FormatHclResourceName(fmt.Sprintf("%s_%s_%s_security", fabricName, vpcName, provider.VariablePrefix()))
}

func ModuleSource(base string, provider types.Provider, component string) string {
	return fmt.Sprintf("%s/%s/%s", base, provider.VariablePrefix(), component)
}

// SecurityGroupOutputs lists the security module outputs a node attaches to. Controllers
// additionally join the proxy group.
func SecurityGroupOutputs(role types.Role, node *types.Node) []string {
	switch role {
	case types.RoleOrchestrator:
		if node.IsController() {
			return []string{SecurityGroupOrchestrator, SecurityGroupProxy}
		}
		return []string{SecurityGroupOrchestrator}
	case types.RoleProcessor:
		return []string{SecurityGroupProcessor}
	case types.RoleWorkload:
		return []string{SecurityGroupWorkload}
	default:
		return nil
	}
}

type nodeReferences struct {
	network        hclwrite.Tokens
	subnet         hclwrite.Tokens
	securityGroups hclwrite.Tokens
}

// resolveReferences links a node to its network. Provisioned networks are referenced through
// the sibling networking and security module outputs; adopted networks use the ids supplied
// for the VPC.
func resolveReferences(fabricName, vpcName string, provider types.Provider, role types.Role, node *types.Node, settings types.NetworkSettings, spec providerSpec) (nodeReferences, error) {
	refs := nodeReferences{}
	networkingModule := NetworkingModuleName(fabricName, vpcName, provider)
	securityModule := SecurityModuleName(fabricName, vpcName, provider)

	if settings.NetworkEnabled {
		refs.network = utils.TokensForModuleOutput(networkingModule, spec.networkOutput)
	} else {
		if settings.VPCID == "" {
			return refs, fmt.Errorf("%w: vpc_id of adopted vpc %s", types.ErrMissingRenderField, vpcName)
		}
		refs.network = hclwrite.TokensForValue(cty.StringVal(settings.VPCID))
	}

	if settings.NetworkEnabled && settings.SubnetEnabled {
		refs.subnet = utils.TokensForModuleOutput(networkingModule, spec.subnetOutput)
	} else {
		if settings.SubnetID == "" {
			return refs, fmt.Errorf("%w: subnet_id of adopted vpc %s", types.ErrMissingRenderField, vpcName)
		}
		refs.subnet = hclwrite.TokensForValue(cty.StringVal(settings.SubnetID))
	}

	outputs := SecurityGroupOutputs(role, node)
	if settings.NetworkEnabled {
		groups := make([]hclwrite.Tokens, 0, len(outputs))
		for _, output := range outputs {
			groups = append(groups, utils.TokensForModuleOutput(securityModule, output))
		}
		refs.securityGroups = utils.TokensForList(groups)
		return refs, nil
	}

	ids := make([]string, 0, len(outputs))
	for _, output := range outputs {
		id := settings.SecurityGroupIDs[output]
		if id == "" {
			return refs, fmt.Errorf("%w: %s of adopted vpc %s", types.ErrMissingRenderField, output, vpcName)
		}
		ids = append(ids, id)
	}
	refs.securityGroups = utils.TokensForStringList(ids)

	return refs, nil
}
