package hcl

import (
	"github.com/bayware/bwctl/internal/types"
)

// NodeSummary is what a render produces for one node on one provider.
type NodeSummary struct {
	Role     types.Role
	Name     string
	Provider types.Provider
	VPC      string
	Region   string
	File     string
	Image    string
	DNS      []string
	DNSLive  bool
}

// Inventory lists every rendered node, ordered by role then node order, with the file it
// lands in, its image reference and the record names published for it.
func (p *RenderPass) Inventory() ([]NodeSummary, error) {
	var summaries []NodeSummary

	for _, role := range types.AllRoles() {
		nodes := p.Fabric.NodesForRole(role)
		for _, name := range p.Fabric.SortedNodeNames(role) {
			node := nodes[name]
			if node == nil {
				continue
			}

			for _, provider := range types.AllProviders() {
				targeted, err := NodeTargetsProvider(p.Fabric, node, provider)
				if err != nil {
					return nil, p.renderError(name, role, provider, err)
				}
				if !targeted {
					continue
				}

				_, image, err := ImageReference(provider, role, node.OSType(), p.Context.Image.Baseline(), p.ImageSuffix)
				if err != nil {
					return nil, p.renderError(name, role, provider, err)
				}

				var fqdns []string
				for _, host := range DNSNames(p.Fabric.Name, role, name, node) {
					fqdns = append(fqdns, RecordFQDN(host, p.Fabric.Config.CompanyName, p.Context.DNSZone))
				}

				summaries = append(summaries, NodeSummary{
					Role:     role,
					Name:     name,
					Provider: provider,
					VPC:      node.VPC,
					Region:   p.Fabric.VPCs[node.VPC].Region,
					File:     NodesFile(provider, role),
					Image:    image,
					DNS:      fqdns,
					DNSLive:  node.DNSEnabled(),
				})
			}
		}
	}

	return summaries, nil
}

// Inventory summarizes what RenderFabric would emit for the fabric without rendering it.
func (s *FabricHCLService) Inventory(fabric *types.Fabric, renderContext types.RenderContext) ([]NodeSummary, error) {
	pass, err := NewRenderPass(fabric, renderContext)
	if err != nil {
		return nil, err
	}
	return pass.Inventory()
}
