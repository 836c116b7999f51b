package hcl

import (
	"fmt"

	"github.com/bayware/bwctl/internal/services/hcl/modules"
	"github.com/bayware/bwctl/internal/types"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

type RootVariable = modules.ModuleVariable[types.RenderContext]

func GetGlobalVariables() []RootVariable {
	return []RootVariable{
		{
			Name: "image_tag",
			Definition: types.TerraformVariable{
				Name:        "image_tag",
				Description: "Image channel: stable or unstable",
				Type:        "string",
				Default:     types.ImageChannelStable,
			},
			ValueExtractor: func(rc types.RenderContext) any {
				return rc.Image.ImageTag()
			},
		},
		{
			Name: "image_version",
			Definition: types.TerraformVariable{
				Name:        "image_version",
				Description: "Image family version with dots replaced by dashes",
				Type:        "string",
			},
			ValueExtractor: func(rc types.RenderContext) any {
				return rc.Image.NormalisedImageVersion()
			},
		},
		{
			Name: "dns_managed_zone_domain",
			Definition: types.TerraformVariable{
				Name:        "dns_managed_zone_domain",
				Description: "Hosted zone holding the node records",
				Type:        "string",
			},
			ValueExtractor: func(rc types.RenderContext) any {
				return rc.DNSZone
			},
		},
		{
			Name: "production",
			Definition: types.TerraformVariable{
				Name:        "production",
				Description: "Harden security groups for production fabrics",
				Type:        "bool",
				Default:     true,
			},
			ValueExtractor: func(rc types.RenderContext) any {
				return rc.Production
			},
		},
		{
			Name: "bastion_ip",
			Definition: types.TerraformVariable{
				Name:        "bastion_ip",
				Description: "Public IP of the fabric manager allowed to reach the nodes",
				Type:        "string",
			},
			ValueExtractor: func(rc types.RenderContext) any {
				return rc.BastionIP
			},
		},
		{
			Name: "ssh_user",
			Definition: types.TerraformVariable{
				Name:        "ssh_user",
				Description: "Login user provisioned on every node",
				Type:        "string",
				Default:     types.DefaultSSHUser,
			},
			ValueExtractor: func(rc types.RenderContext) any {
				return rc.User()
			},
		},
	}
}

func GetProviderVariables(provider types.Provider) []RootVariable {
	switch provider {
	case types.ProviderAWS:
		usesKeys := func(rc types.RenderContext) bool { return !rc.AWSUseInstanceRole }
		return []RootVariable{
			{
				Name:       "aws_access_key",
				Definition: types.TerraformVariable{Name: "aws_access_key", Description: "AWS access key id", Type: "string", Sensitive: true},
				Condition:  usesKeys,
			},
			{
				Name:       "aws_secret_key",
				Definition: types.TerraformVariable{Name: "aws_secret_key", Description: "AWS secret access key", Type: "string", Sensitive: true},
				Condition:  usesKeys,
			},
		}
	case types.ProviderGCP:
		return []RootVariable{
			{
				Name:       "gcp_credentials",
				Definition: types.TerraformVariable{Name: "gcp_credentials", Description: "GCP service account key (JSON)", Type: "string", Sensitive: true},
			},
			{
				Name:       "gcp_project_name",
				Definition: types.TerraformVariable{Name: "gcp_project_name", Description: "GCP project id", Type: "string"},
			},
		}
	case types.ProviderAzure:
		return []RootVariable{
			{
				Name:       "azr_client_id",
				Definition: types.TerraformVariable{Name: "azr_client_id", Description: "Azure service principal client id", Type: "string"},
			},
			{
				Name:       "azr_client_secret",
				Definition: types.TerraformVariable{Name: "azr_client_secret", Description: "Azure service principal secret", Type: "string", Sensitive: true},
			},
			{
				Name:       "azr_resource_group_name",
				Definition: types.TerraformVariable{Name: "azr_resource_group_name", Description: "Azure resource group holding the fabric", Type: "string"},
			},
			{
				Name:       "azr_subscription_id",
				Definition: types.TerraformVariable{Name: "azr_subscription_id", Description: "Azure subscription id", Type: "string"},
			},
			{
				Name:       "azr_tennant_id",
				Definition: types.TerraformVariable{Name: "azr_tennant_id", Description: "Azure tenant id", Type: "string"},
			},
		}
	default:
		return nil
	}
}

func renderVariableBlocks(definitions []types.TerraformVariable) string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	for _, v := range definitions {
		rootBody.AppendBlock(modules.GenerateVariableBlock(v))
		rootBody.AppendNewline()
	}

	return formatFile(f)
}

func (p *RenderPass) RenderGlobalVariables() string {
	return renderVariableBlocks(modules.ExtractVariableDefinitions(GetGlobalVariables(), p.Context))
}

func (p *RenderPass) RenderProviderVariables(provider types.Provider) string {
	return renderVariableBlocks(modules.ExtractVariableDefinitions(GetProviderVariables(provider), p.Context))
}

// VPCVariableDefinitions declares the per-VPC namespace variables the node and networking
// modules reference, with provider defaults.
func (p *RenderPass) VPCVariableDefinitions(provider types.Provider) ([]types.TerraformVariable, error) {
	spec, err := specFor(provider)
	if err != nil {
		return nil, err
	}

	var definitions []types.TerraformVariable
	for _, vpcName := range p.vpcsForProvider(provider) {
		vpc := p.Fabric.VPCs[vpcName]
		namespace := VariableNamespace(provider, vpc.Index)

		if p.Context.NetworkFor(vpcName).NetworkEnabled {
			definitions = append(definitions, types.TerraformVariable{
				Name:        namespace + "_cidr_block",
				Description: fmt.Sprintf("CIDR block of vpc %s", vpcName),
				Type:        "string",
				Default:     fmt.Sprintf("10.%d.0.0/16", vpc.Index),
			})
		}

		for _, role := range types.AllRoles() {
			definitions = append(definitions,
				types.TerraformVariable{
					Name:        RoleVariable(namespace, role, "instance_type"),
					Description: fmt.Sprintf("Instance size of %s nodes in vpc %s", role, vpcName),
					Type:        "string",
					Default:     spec.defaultInstanceType,
				},
				types.TerraformVariable{
					Name:        RoleVariable(namespace, role, "disk_size"),
					Description: fmt.Sprintf("Disk size in GB of %s nodes in vpc %s", role, vpcName),
					Type:        "number",
					Default:     spec.defaultDiskSize,
				},
			)
		}
	}

	return definitions, nil
}

func (p *RenderPass) RenderVPCVariables(provider types.Provider) (string, error) {
	definitions, err := p.VPCVariableDefinitions(provider)
	if err != nil {
		return "", &RenderError{Fabric: p.Fabric.Name, Provider: provider, Err: err}
	}
	return renderVariableBlocks(definitions), nil
}

// RenderTfvars renders terraform.tfvars with the non-secret root variable values. Credentials
// are passed at apply time and never written.
func (p *RenderPass) RenderTfvars() string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	for _, v := range modules.ExtractVariableValues(GetGlobalVariables(), p.Context) {
		if ctyVal := modules.ToCtyValue(v.Value); ctyVal != cty.NilVal {
			rootBody.SetAttributeValue(v.Name, ctyVal)
		}
	}

	return formatFile(f)
}
