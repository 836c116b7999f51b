package modules

import (
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Attribute is one module argument. Attributes are rendered in slice order.
type Attribute struct {
	Name   string
	Tokens hclwrite.Tokens
}

func LiteralAttribute(name string, value cty.Value) Attribute {
	return Attribute{Name: name, Tokens: hclwrite.TokensForValue(value)}
}

func RawAttribute(name string, tokens hclwrite.Tokens) Attribute {
	return Attribute{Name: name, Tokens: tokens}
}

// Module describes one `module` block instantiation.
type Module struct {
	Name       string
	Source     string
	Providers  map[string]string // provider local name -> provider reference, e.g. "aws" -> "aws.us_west_1"
	Attributes []Attribute
}

func GenerateModuleBlock(m Module) *hclwrite.Block {
	moduleBlock := hclwrite.NewBlock("module", []string{m.Name})
	moduleBody := moduleBlock.Body()
	moduleBody.SetAttributeValue("source", cty.StringVal(m.Source))

	if len(m.Providers) > 0 {
		providers := make(map[string]hclwrite.Tokens, len(m.Providers))
		for localName, ref := range m.Providers {
			providers[localName] = utils.TokensForResourceReference(ref)
		}
		moduleBody.SetAttributeRaw("providers", utils.TokensForMap(providers))
	}
	moduleBody.AppendNewline()

	for _, attr := range m.Attributes {
		moduleBody.SetAttributeRaw(attr.Name, attr.Tokens)
	}

	return moduleBlock
}
