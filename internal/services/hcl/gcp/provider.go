package gcp

import (
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

func GenerateRequiredProviderTokens() (string, hclwrite.Tokens) {
	googleProvider := map[string]hclwrite.Tokens{
		"source":  utils.TokensForStringTemplate("hashicorp/google"),
		"version": utils.TokensForStringTemplate("7.8.0"),
	}

	return "google", utils.TokensForMap(googleProvider)
}

func GenerateProviderBlock(alias, region string) *hclwrite.Block {
	providerBlock := hclwrite.NewBlock("provider", []string{"google"})
	providerBody := providerBlock.Body()
	providerBody.SetAttributeValue("alias", cty.StringVal(alias))
	providerBody.SetAttributeValue("region", cty.StringVal(region))
	providerBody.SetAttributeRaw("project", utils.TokensForVarReference("gcp_project_name"))
	providerBody.SetAttributeRaw("credentials", utils.TokensForVarReference("gcp_credentials"))

	return providerBlock
}
