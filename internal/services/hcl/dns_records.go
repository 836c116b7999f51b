package hcl

import (
	"fmt"
	"strings"

	"github.com/bayware/bwctl/internal/services/hcl/aws"
	"github.com/bayware/bwctl/internal/types"
	"github.com/bayware/bwctl/internal/utils"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// PublicAddressOutput is the node module output every DNS record points at.
const PublicAddressOutput = "public_ip"

// DNSNames returns the host names published for a node: the node itself and, for
// controllers, the role-scoped and generic orchestrator aliases of the fabric.
func DNSNames(fabricName string, role types.Role, name string, node *types.Node) []string {
	names := []string{name}
	if role == types.RoleOrchestrator && node.IsController() {
		names = append(names,
			fmt.Sprintf("%s-%s", node.Type, fabricName),
			fmt.Sprintf("%s-%s", types.RoleOrchestrator, fabricName),
		)
	}
	return names
}

// RecordFQDN joins host, company and zone, skipping empty segments.
func RecordFQDN(host, company, zone string) string {
	parts := []string{}
	for _, part := range []string{host, company, strings.TrimSuffix(zone, ".")} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ".")
}

// dnsRecords renders the records of a node. They are rendered even when DNS is disabled for
// the node; the flag only sets their count.
func (p *RenderPass) dnsRecords(role types.Role, name string, node *types.Node) ([]*hclwrite.Block, error) {
	if p.Context.DNSZone == "" {
		return nil, fmt.Errorf("%w: dns zone domain", types.ErrMissingRenderField)
	}

	target := fmt.Sprintf("module.%s.%s", name, PublicAddressOutput)
	enabled := node.DNSEnabled()

	var records []*hclwrite.Block
	for _, host := range DNSNames(p.Fabric.Name, role, name, node) {
		fqdn := RecordFQDN(host, p.Fabric.Config.CompanyName, p.Context.DNSZone)
		records = append(records, aws.GenerateRoute53Record(utils.FormatHclResourceName(host), fqdn, target, enabled))
	}

	return records, nil
}
