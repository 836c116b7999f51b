package hcl

import (
	"fmt"
	"slices"

	"github.com/bayware/bwctl/internal/services/hcl/aws"
	"github.com/bayware/bwctl/internal/services/hcl/azure"
	"github.com/bayware/bwctl/internal/services/hcl/gcp"
	"github.com/bayware/bwctl/internal/types"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// regionsForProvider returns the distinct regions of the VPCs deployed to the provider, sorted.
func (p *RenderPass) regionsForProvider(provider types.Provider) []string {
	var regions []string
	for _, name := range p.vpcsForProvider(provider) {
		region := p.Fabric.VPCs[name].Region
		if !slices.Contains(regions, region) {
			regions = append(regions, region)
		}
	}
	slices.Sort(regions)
	return regions
}

// RenderPreamble renders main.tf: required providers and state backend, one provider
// configuration per region in use, the DNS zone lookup and the pass-scoped image locals.
func (p *RenderPass) RenderPreamble() string {
	f := hclwrite.NewEmptyFile()
	rootBody := f.Body()

	useGCP := len(p.vpcsForProvider(types.ProviderGCP)) > 0
	useAzure := len(p.vpcsForProvider(types.ProviderAzure)) > 0

	terraformBlock := rootBody.AppendNewBlock("terraform", nil)
	terraformBody := terraformBlock.Body()

	requiredProvidersBlock := terraformBody.AppendNewBlock("required_providers", nil)
	requiredProvidersBody := requiredProvidersBlock.Body()
	requiredProvidersBody.SetAttributeRaw(aws.GenerateRequiredProviderTokens())
	if useGCP {
		requiredProvidersBody.SetAttributeRaw(gcp.GenerateRequiredProviderTokens())
	}
	if useAzure {
		requiredProvidersBody.SetAttributeRaw(azure.GenerateRequiredProviderTokens())
	}

	if backend := p.Context.StateBackend; backend.Enabled {
		terraformBody.AppendNewline()
		key := fmt.Sprintf("%s/terraform.tfstate", p.Fabric.Name)
		terraformBody.AppendBlock(aws.GenerateS3BackendBlock(backend.Bucket, key, backend.Region))
	}
	rootBody.AppendNewline()

	// Default provider serves the Route 53 zone.
	rootBody.AppendBlock(aws.GenerateProviderBlock("", aws.DNSRegion, p.Context.AWSUseInstanceRole))
	rootBody.AppendNewline()

	for _, region := range p.regionsForProvider(types.ProviderAWS) {
		rootBody.AppendBlock(aws.GenerateProviderBlock(ProviderAlias(region), region, p.Context.AWSUseInstanceRole))
		rootBody.AppendNewline()
	}

	for _, region := range p.regionsForProvider(types.ProviderGCP) {
		rootBody.AppendBlock(gcp.GenerateProviderBlock(ProviderAlias(region), region))
		rootBody.AppendNewline()
	}

	if useAzure {
		rootBody.AppendBlock(azure.GenerateProviderBlock())
		rootBody.AppendNewline()
	}

	rootBody.AppendBlock(aws.GenerateRoute53ZoneDataSource("dns_managed_zone_domain"))
	rootBody.AppendNewline()

	localsBlock := rootBody.AppendNewBlock("locals", nil)
	localsBody := localsBlock.Body()
	localsBody.SetAttributeValue("image_tag", cty.StringVal(p.Context.Image.ImageTag()))
	localsBody.SetAttributeValue("image_version", cty.StringVal(p.Context.Image.NormalisedImageVersion()))
	localsBody.SetAttributeValue("image_suffix", cty.StringVal(p.ImageSuffix))

	return formatFile(f)
}
