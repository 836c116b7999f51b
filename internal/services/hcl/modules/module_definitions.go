package modules

import (
	"github.com/bayware/bwctl/internal/types"
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// ModuleVariable is a generic definition for root variables.
// R is the source of the values (e.g. types.RenderContext).
type ModuleVariable[R any] struct {
	Name           string
	Definition     types.TerraformVariable
	ValueExtractor func(source R) any  // Value written to terraform.tfvars. If nil, the value is supplied at apply time.
	Condition      func(source R) bool // Determines if this variable should be included (nil = always include).
}

func ExtractVariableDefinitions[R any](vars []ModuleVariable[R], source R) []types.TerraformVariable {
	var definitions []types.TerraformVariable

	for _, varDef := range vars {
		if varDef.Condition != nil && !varDef.Condition(source) {
			continue
		}
		definitions = append(definitions, varDef.Definition)
	}

	return definitions
}

// ExtractVariableValues returns the tfvars entries in definition order. Empty strings are
// skipped so terraform falls back to the declared default.
func ExtractVariableValues[R any](vars []ModuleVariable[R], source R) []VariableValue {
	var values []VariableValue

	for _, varDef := range vars {
		if varDef.Condition != nil && !varDef.Condition(source) {
			continue
		}
		if varDef.ValueExtractor == nil {
			continue
		}

		value := varDef.ValueExtractor(source)
		if v, ok := value.(string); ok && v == "" {
			continue
		}
		values = append(values, VariableValue{Name: varDef.Name, Value: value})
	}

	return values
}

type VariableValue struct {
	Name  string
	Value any
}

func GenerateVariableBlock(v types.TerraformVariable) *hclwrite.Block {
	variableBlock := hclwrite.NewBlock("variable", []string{v.Name})
	variableBody := variableBlock.Body()
	variableBody.SetAttributeRaw("type", utils.TokensForResourceReference(v.Type))
	if v.Description != "" {
		variableBody.SetAttributeValue("description", cty.StringVal(v.Description))
	}
	if v.Sensitive {
		variableBody.SetAttributeValue("sensitive", cty.BoolVal(true))
	}
	if v.Default != nil {
		if ctyVal := ToCtyValue(v.Default); ctyVal != cty.NilVal {
			variableBody.SetAttributeValue("default", ctyVal)
		}
	}

	return variableBlock
}

// ToCtyValue converts the scalar Go values used in variable defaults and tfvars.
func ToCtyValue(value any) cty.Value {
	switch v := value.(type) {
	case string:
		return cty.StringVal(v)
	case bool:
		return cty.BoolVal(v)
	case int:
		return cty.NumberIntVal(int64(v))
	case int64:
		return cty.NumberIntVal(v)
	case []string:
		if len(v) == 0 {
			return cty.ListValEmpty(cty.String)
		}
		values := make([]cty.Value, len(v))
		for i, item := range v {
			values[i] = cty.StringVal(item)
		}
		return cty.ListVal(values)
	default:
		return cty.NilVal
	}
}
