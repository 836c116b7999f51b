package hcl

import (
	"errors"
	"fmt"

	"github.com/bayware/bwctl/internal/types"
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// RenderError locates a fault inside a fabric render.
type RenderError struct {
	Fabric   string
	Node     string
	Role     types.Role
	Provider types.Provider
	Err      error
}

func (e *RenderError) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("fabric %s (%s): %v", e.Fabric, e.Provider, e.Err)
	}
	return fmt.Sprintf("fabric %s: %s %s (%s): %v", e.Fabric, e.Role, e.Node, e.Provider, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// RenderPass is one render of a fabric. Values derived from the render context, such as the
// image suffix, are computed once here and shared by every file of the pass.
type RenderPass struct {
	Fabric      *types.Fabric
	Context     types.RenderContext
	ImageSuffix string
}

func NewRenderPass(fabric *types.Fabric, renderContext types.RenderContext) (*RenderPass, error) {
	if fabric == nil {
		return nil, fmt.Errorf("no fabric to render")
	}

	if valid, errs := renderContext.Validate(); !valid {
		return nil, fmt.Errorf("fabric %s: %w", fabric.Name, errors.Join(errs...))
	}

	pass := &RenderPass{
		Fabric:      fabric,
		Context:     renderContext,
		ImageSuffix: ImageSuffix(renderContext.Image),
	}

	for _, name := range fabric.SortedVPCNames() {
		if vpc := fabric.VPCs[name]; vpc == nil || vpc.Region == "" {
			return nil, fmt.Errorf("fabric %s: vpc %s has no region", fabric.Name, name)
		}
	}

	if err := pass.checkDNSLabels(); err != nil {
		return nil, err
	}

	return pass, nil
}

// checkDNSLabels rejects fabrics where two nodes, or a controller alias and a node, map to
// the same record label. Both would render the same aws_route53_record address.
func (p *RenderPass) checkDNSLabels() error {
	owners := map[string]string{}
	for _, role := range types.AllRoles() {
		for _, name := range p.Fabric.SortedNodeNames(role) {
			label := utils.FormatHclResourceName(name)
			if owner, ok := owners[label]; ok {
				return &RenderError{
					Fabric: p.Fabric.Name,
					Node:   name,
					Role:   role,
					Err:    fmt.Errorf("%w: dns record %s is already used by %s", types.ErrDuplicateDeclaration, label, owner),
				}
			}
			owners[label] = name
		}
	}

	for _, name := range p.Fabric.SortedNodeNames(types.RoleOrchestrator) {
		node := p.Fabric.Orchestrators[name]
		if node == nil {
			continue
		}
		aliases := DNSNames(p.Fabric.Name, types.RoleOrchestrator, name, node)[1:]
		for _, alias := range aliases {
			label := utils.FormatHclResourceName(alias)
			if owner, ok := owners[label]; ok {
				return &RenderError{
					Fabric: p.Fabric.Name,
					Node:   name,
					Role:   types.RoleOrchestrator,
					Err:    fmt.Errorf("%w: dns alias %s is already used by %s", types.ErrDuplicateDeclaration, alias, owner),
				}
			}
			owners[label] = name
		}
	}

	return nil
}

func (p *RenderPass) renderError(node string, role types.Role, provider types.Provider, err error) error {
	return &RenderError{Fabric: p.Fabric.Name, Node: node, Role: role, Provider: provider, Err: err}
}

func formatFile(f *hclwrite.File) string {
	return string(hclwrite.Format(f.Bytes()))
}
