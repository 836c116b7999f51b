package hcl

import (
	"slices"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/stretchr/testify/require"
)

type parsedFile struct {
	src  []byte
	body *hclsyntax.Body
}

func parseRendered(t *testing.T, content string) parsedFile {
	t.Helper()
	src := []byte(content)
	file, diags := hclsyntax.ParseConfig(src, "rendered.tf", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
	return parsedFile{src: src, body: file.Body.(*hclsyntax.Body)}
}

// blocks returns the top level blocks of a type, optionally filtered by first label.
func (p parsedFile) blocks(blockType string, labels ...string) []*hclsyntax.Block {
	var found []*hclsyntax.Block
	for _, block := range p.body.Blocks {
		if block.Type != blockType {
			continue
		}
		if len(labels) > 0 && (len(block.Labels) == 0 || block.Labels[0] != labels[0]) {
			continue
		}
		found = append(found, block)
	}
	return found
}

func (p parsedFile) block(t *testing.T, blockType string, labels ...string) *hclsyntax.Block {
	t.Helper()
	for _, block := range p.blocks(blockType) {
		if len(block.Labels) < len(labels) {
			continue
		}
		match := true
		for i, label := range labels {
			if block.Labels[i] != label {
				match = false
			}
		}
		if match {
			return block
		}
	}
	require.Failf(t, "block not found", "%s %v", blockType, labels)
	return nil
}

// attr returns the source text of an attribute expression.
func (p parsedFile) attr(t *testing.T, block *hclsyntax.Block, name string) string {
	t.Helper()
	attribute, ok := block.Body.Attributes[name]
	require.Truef(t, ok, "attribute %s not found in %s %v", name, block.Type, block.Labels)
	return string(attribute.Expr.Range().SliceBytes(p.src))
}

func (p parsedFile) hasAttr(block *hclsyntax.Block, name string) bool {
	_, ok := block.Body.Attributes[name]
	return ok
}

// attrOrder returns the attribute names of a block in source order.
func (p parsedFile) attrOrder(block *hclsyntax.Block) []string {
	attrs := make([]*hclsyntax.Attribute, 0, len(block.Body.Attributes))
	for _, attribute := range block.Body.Attributes {
		attrs = append(attrs, attribute)
	}
	slices.SortFunc(attrs, func(a, b *hclsyntax.Attribute) int {
		return a.SrcRange.Start.Byte - b.SrcRange.Start.Byte
	})

	names := make([]string, len(attrs))
	for i, attribute := range attrs {
		names[i] = attribute.Name
	}
	return names
}
