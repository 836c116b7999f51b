package render

import (
	"fmt"
	"strings"

	"github.com/bayware/bwctl/internal/services/hcl"
	"github.com/bayware/bwctl/internal/services/markdown"
	"github.com/bayware/bwctl/internal/types"
)

// SummaryFile is written next to the terraform files.
const SummaryFile = "RENDER.md"

// generateSummary describes a finished render: the image channel, the files written and the
// node inventory with the DNS names each node publishes.
func generateSummary(fabric *types.Fabric, renderContext types.RenderContext, nodes []hcl.NodeSummary, files types.TerraformFiles) *markdown.Markdown {
	md := markdown.New()

	md.AddHeading(fmt.Sprintf("Fabric %s", fabric.Name), 1)

	overview := []string{
		fmt.Sprintf("**Image:** %s (%s)", renderContext.Image.NormalisedImageVersion(), renderContext.Image.ImageTag()),
		fmt.Sprintf("**DNS zone:** %s", renderContext.DNSZone),
		fmt.Sprintf("**Modules:** %s", renderContext.ModulesBase()),
		fmt.Sprintf("**Nodes:** %d", len(nodes)),
	}
	if fabric.Config.CompanyName != "" {
		overview = append(overview, fmt.Sprintf("**Company:** %s", fabric.Config.CompanyName))
	}
	if renderContext.StateBackend.Enabled {
		overview = append(overview, fmt.Sprintf("**State backend:** s3://%s/%s/terraform.tfstate", renderContext.StateBackend.Bucket, fabric.Name))
	}
	md.AddList(overview)

	md.AddHeading("Nodes", 2)
	if len(nodes) == 0 {
		md.AddParagraph("No nodes are defined for this fabric.")
	} else {
		rows := make([][]string, 0, len(nodes))
		for _, node := range nodes {
			dns := "disabled"
			if node.DNSLive {
				dns = strings.Join(node.DNS, ", ")
			}
			rows = append(rows, []string{
				string(node.Role),
				node.Name,
				string(node.Provider),
				fmt.Sprintf("%s (%s)", node.VPC, node.Region),
				node.File,
				node.Image,
				dns,
			})
		}
		md.AddTable([]string{"Role", "Node", "Provider", "VPC", "File", "Image", "DNS"}, rows, 0)
	}

	md.AddHeading("Files", 2)
	names := make([]string, 0, len(files))
	for _, file := range files {
		names = append(names, fmt.Sprintf("`%s`", file.Name))
	}
	md.AddList(names)

	return md
}
