package aws

import (
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// DNSRegion is the region of the default aws provider, which serves the Route 53 records.
const DNSRegion = "us-east-1"

func GenerateRequiredProviderTokens() (string, hclwrite.Tokens) {
	awsProvider := map[string]hclwrite.Tokens{
		"source":  utils.TokensForStringTemplate("hashicorp/aws"),
		"version": utils.TokensForStringTemplate("6.18.0"),
	}

	return "aws", utils.TokensForMap(awsProvider)
}

// GenerateProviderBlock renders an aws provider. An empty alias renders the default provider.
// Explicit keys are only wired when the ambient EC2 instance role is not used.
func GenerateProviderBlock(alias, region string, useInstanceRole bool) *hclwrite.Block {
	providerBlock := hclwrite.NewBlock("provider", []string{"aws"})
	providerBody := providerBlock.Body()
	if alias != "" {
		providerBody.SetAttributeValue("alias", cty.StringVal(alias))
	}
	providerBody.SetAttributeValue("region", cty.StringVal(region))

	if !useInstanceRole {
		providerBody.SetAttributeRaw("access_key", utils.TokensForVarReference("aws_access_key"))
		providerBody.SetAttributeRaw("secret_key", utils.TokensForVarReference("aws_secret_key"))
	}

	return providerBlock
}

// GenerateS3BackendBlock renders the state backend. Backend blocks cannot reference variables,
// so access keys are passed with -backend-config at init time.
func GenerateS3BackendBlock(bucket, key, region string) *hclwrite.Block {
	backendBlock := hclwrite.NewBlock("backend", []string{"s3"})
	backendBody := backendBlock.Body()
	backendBody.SetAttributeValue("bucket", cty.StringVal(bucket))
	backendBody.SetAttributeValue("key", cty.StringVal(key))
	backendBody.SetAttributeValue("region", cty.StringVal(region))

	return backendBlock
}
