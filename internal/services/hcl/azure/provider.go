package azure

import (
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

func GenerateRequiredProviderTokens() (string, hclwrite.Tokens) {
	azurermProvider := map[string]hclwrite.Tokens{
		"source":  utils.TokensForStringTemplate("hashicorp/azurerm"),
		"version": utils.TokensForStringTemplate("4.49.0"),
	}

	return "azurerm", utils.TokensForMap(azurermProvider)
}

// GenerateProviderBlock renders the single azurerm provider; Azure resources carry their
// location themselves, so no regional aliases are needed.
func GenerateProviderBlock() *hclwrite.Block {
	providerBlock := hclwrite.NewBlock("provider", []string{"azurerm"})
	providerBody := providerBlock.Body()
	providerBody.AppendNewBlock("features", nil)
	providerBody.SetAttributeRaw("client_id", utils.TokensForVarReference("azr_client_id"))
	providerBody.SetAttributeRaw("client_secret", utils.TokensForVarReference("azr_client_secret"))
	providerBody.SetAttributeRaw("subscription_id", utils.TokensForVarReference("azr_subscription_id"))
	providerBody.SetAttributeRaw("tenant_id", utils.TokensForVarReference("azr_tennant_id"))

	return providerBlock
}
