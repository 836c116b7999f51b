package hcl

import (
	"fmt"

	"github.com/bayware/bwctl/internal/services/hcl/modules"
	"github.com/bayware/bwctl/internal/types"
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

var descriptionTemplates = map[types.Role]string{
	types.RoleOrchestrator: "Orchestrator %d of fabric %s",
	types.RoleProcessor:    "Processor %d of fabric %s",
	types.RoleWorkload:     "Workload %d of fabric %s",
}

// NodeDescription renders the human readable instance description. Orchestrators also
// carry their type.
func NodeDescription(fabricName string, role types.Role, node *types.Node) string {
	description := fmt.Sprintf(descriptionTemplates[role], node.Index, fabricName)
	if role == types.RoleOrchestrator && node.Type != "" {
		description = fmt.Sprintf("%s (%s)", description, node.Type)
	}
	return description
}

// RenderNodes renders the module and DNS record blocks of every node of a role that targets
// the provider. Any fault aborts the file; nothing partial is returned.
func (p *RenderPass) RenderNodes(provider types.Provider, role types.Role) (string, error) {
	spec, err := specFor(provider)
	if err != nil {
		return "", p.renderError("", role, provider, err)
	}

	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	nodes := p.Fabric.NodesForRole(role)
	for _, name := range p.Fabric.SortedNodeNames(role) {
		node := nodes[name]
		if node == nil {
			return "", p.renderError(name, role, provider, fmt.Errorf("node has no definition"))
		}

		targeted, err := NodeTargetsProvider(p.Fabric, node, provider)
		if err != nil {
			return "", p.renderError(name, role, provider, err)
		}
		if !targeted {
			continue
		}

		module, err := p.nodeModule(spec, provider, role, name, node)
		if err != nil {
			return "", p.renderError(name, role, provider, err)
		}
		rootBody.AppendBlock(modules.GenerateModuleBlock(module))
		rootBody.AppendNewline()

		records, err := p.dnsRecords(role, name, node)
		if err != nil {
			return "", p.renderError(name, role, provider, err)
		}
		for _, record := range records {
			rootBody.AppendBlock(record)
			rootBody.AppendNewline()
		}
	}

	return formatFile(f), nil
}

func (p *RenderPass) nodeModule(spec providerSpec, provider types.Provider, role types.Role, name string, node *types.Node) (modules.Module, error) {
	vpc := p.Fabric.VPCs[node.VPC]
	namespace := VariableNamespace(provider, vpc.Index)

	refs, err := resolveReferences(p.Fabric.Name, node.VPC, provider, role, node, p.Context.NetworkFor(node.VPC), spec)
	if err != nil {
		return modules.Module{}, err
	}

	imageAttr, imageRef, err := ImageReference(provider, role, node.OSType(), p.Context.Image.Baseline(), p.ImageSuffix)
	if err != nil {
		return modules.Module{}, err
	}

	module := modules.Module{
		Name:   name,
		Source: ModuleSource(p.Context.ModulesBase(), provider, string(role)),
		Attributes: []modules.Attribute{
			modules.LiteralAttribute("create_resources", cty.True),
			modules.LiteralAttribute("name", cty.StringVal(name)),
			modules.LiteralAttribute("description", cty.StringVal(NodeDescription(p.Fabric.Name, role, node))),
			modules.RawAttribute(spec.instanceTypeAttr, utils.TokensForVarReference(RoleVariable(namespace, role, "instance_type"))),
			modules.RawAttribute(spec.diskSizeAttr, utils.TokensForVarReference(RoleVariable(namespace, role, "disk_size"))),
			modules.LiteralAttribute(imageAttr, cty.StringVal(imageRef)),
			modules.RawAttribute("ssh_user", utils.TokensForVarReference("ssh_user")),
			modules.RawAttribute("ssh_public_key", utils.TokensForFunctionCall("file", hclwrite.TokensForValue(cty.StringVal(p.Context.SSHPublicKeyFile)))),
			modules.RawAttribute(spec.networkAttr, refs.network),
			modules.RawAttribute(spec.subnetAttr, refs.subnet),
			modules.RawAttribute(spec.securityGroupsAttr, refs.securityGroups),
		},
	}

	p.placeModule(&module, spec, vpc)
	module.Attributes = append(module.Attributes, modules.RawAttribute(spec.tagsAttr, p.nodeTags(role, node)))

	return module, nil
}

func (p *RenderPass) nodeTags(role types.Role, node *types.Node) hclwrite.Tokens {
	tags := map[string]hclwrite.Tokens{
		"fabric": hclwrite.TokensForValue(cty.StringVal(p.Fabric.Name)),
		"role":   hclwrite.TokensForValue(cty.StringVal(string(role))),
		"vpc":    hclwrite.TokensForValue(cty.StringVal(node.VPC)),
	}
	if p.Fabric.Config.CompanyName != "" {
		tags["company"] = hclwrite.TokensForValue(cty.StringVal(p.Fabric.Config.CompanyName))
	}
	return utils.TokensForMap(tags)
}
