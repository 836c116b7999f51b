package hcl

import (
	"fmt"

	"github.com/bayware/bwctl/internal/services/hcl/modules"
	"github.com/bayware/bwctl/internal/types"
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// vpcsForProvider returns the VPC names deployed to the provider, in index order.
func (p *RenderPass) vpcsForProvider(provider types.Provider) []string {
	var names []string
	for _, name := range p.Fabric.SortedVPCNames() {
		if vpc := p.Fabric.VPCs[name]; vpc != nil && vpc.Cloud.Contains(provider) {
			names = append(names, name)
		}
	}
	return names
}

// RenderNetworking renders one networking module per VPC whose network is provisioned by
// this configuration. Adopted networks render nothing.
func (p *RenderPass) RenderNetworking(provider types.Provider) (string, error) {
	spec, err := specFor(provider)
	if err != nil {
		return "", &RenderError{Fabric: p.Fabric.Name, Provider: provider, Err: err}
	}

	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	for _, vpcName := range p.vpcsForProvider(provider) {
		settings := p.Context.NetworkFor(vpcName)
		if !settings.NetworkEnabled {
			continue
		}

		vpc := p.Fabric.VPCs[vpcName]
		namespace := VariableNamespace(provider, vpc.Index)

		module := modules.Module{
			Name:   NetworkingModuleName(p.Fabric.Name, vpcName, provider),
			Source: ModuleSource(p.Context.ModulesBase(), provider, "networking"),
			Attributes: []modules.Attribute{
				modules.LiteralAttribute("create_resources", cty.True),
				modules.LiteralAttribute("name", cty.StringVal(fmt.Sprintf("%s-%s", p.Fabric.Name, vpcName))),
				modules.RawAttribute("cidr_block", utils.TokensForVarReference(namespace+"_cidr_block")),
				modules.LiteralAttribute("subnet_enabled", cty.BoolVal(settings.SubnetEnabled)),
			},
		}
		p.placeModule(&module, spec, vpc)

		rootBody.AppendBlock(modules.GenerateModuleBlock(module))
		rootBody.AppendNewline()
	}

	return formatFile(f), nil
}

// RenderSecurity renders one security module per provisioned VPC. Its outputs are the
// security group ids nodes attach to (sg_orch_id, sg_proxy_id, sg_proc_id, sg_wkld_id).
func (p *RenderPass) RenderSecurity(provider types.Provider) (string, error) {
	spec, err := specFor(provider)
	if err != nil {
		return "", &RenderError{Fabric: p.Fabric.Name, Provider: provider, Err: err}
	}

	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	for _, vpcName := range p.vpcsForProvider(provider) {
		if !p.Context.NetworkFor(vpcName).NetworkEnabled {
			continue
		}

		vpc := p.Fabric.VPCs[vpcName]
		networkingModule := NetworkingModuleName(p.Fabric.Name, vpcName, provider)

		module := modules.Module{
			Name:   SecurityModuleName(p.Fabric.Name, vpcName, provider),
			Source: ModuleSource(p.Context.ModulesBase(), provider, "security"),
			Attributes: []modules.Attribute{
				modules.LiteralAttribute("create_resources", cty.True),
				modules.LiteralAttribute("name", cty.StringVal(fmt.Sprintf("%s-%s", p.Fabric.Name, vpcName))),
				modules.RawAttribute(spec.networkAttr, utils.TokensForModuleOutput(networkingModule, spec.networkOutput)),
				modules.RawAttribute("bastion_ip", utils.TokensForVarReference("bastion_ip")),
				modules.RawAttribute("production", utils.TokensForVarReference("production")),
			},
		}
		p.placeModule(&module, spec, vpc)

		rootBody.AppendBlock(modules.GenerateModuleBlock(module))
		rootBody.AppendNewline()
	}

	return formatFile(f), nil
}

// placeModule points a VPC-scoped module at its region: an aliased provider for regional
// clouds, a location for Azure.
func (p *RenderPass) placeModule(module *modules.Module, spec providerSpec, vpc *types.VPC) {
	if spec.regional {
		module.Providers = map[string]string{
			spec.localName: spec.localName + "." + ProviderAlias(vpc.Region),
		}
		return
	}

	module.Attributes = append(module.Attributes,
		modules.LiteralAttribute("location", cty.StringVal(vpc.Region)),
		modules.RawAttribute("resource_group_name", utils.TokensForVarReference("azr_resource_group_name")),
	)
}
