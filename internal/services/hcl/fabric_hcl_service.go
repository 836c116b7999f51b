package hcl

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/bayware/bwctl/internal/types"
	"github.com/bayware/bwctl/internal/utils"
	"golang.org/x/sync/errgroup"
)

const (
	MainTf              = "main.tf"
	GlobalVariablesTf   = "variables-global.tf"
	TerraformTfvars     = "terraform.tfvars"
	providerVariablesTf = "variables-%s.tf"
	vpcVariablesTf      = "vpc-variables-%s.tf"
	vpcNetworkingTf     = "vpc-networking-%s.tf"
	vpcSecurityTf       = "vpc-security-%s.tf"
	vpcRoleTf           = "vpc-%s-%s.tf"
)

func ProviderVariablesFile(provider types.Provider) string {
	return fmt.Sprintf(providerVariablesTf, provider.VariablePrefix())
}

func VPCVariablesFile(provider types.Provider) string {
	return fmt.Sprintf(vpcVariablesTf, provider.VariablePrefix())
}

func NetworkingFile(provider types.Provider) string {
	return fmt.Sprintf(vpcNetworkingTf, provider.VariablePrefix())
}

func SecurityFile(provider types.Provider) string {
	return fmt.Sprintf(vpcSecurityTf, provider.VariablePrefix())
}

// NodesFile names the file holding the node modules of a role, e.g. vpc-orchestrator-aws.tf.
func NodesFile(provider types.Provider, role types.Role) string {
	return fmt.Sprintf(vpcRoleTf, role, provider.VariablePrefix())
}

type FabricHCLService struct {
}

func NewFabricHCLService() *FabricHCLService {
	return &FabricHCLService{}
}

type renderJob struct {
	name   string
	render func() (string, error)
}

func (p *RenderPass) jobs() []renderJob {
	static := func(name string, render func() string) renderJob {
		return renderJob{name: name, render: func() (string, error) { return render(), nil }}
	}

	jobs := []renderJob{
		static(MainTf, p.RenderPreamble),
		static(GlobalVariablesTf, p.RenderGlobalVariables),
		static(TerraformTfvars, p.RenderTfvars),
	}

	for _, provider := range types.AllProviders() {
		jobs = append(jobs,
			static(ProviderVariablesFile(provider), func() string { return p.RenderProviderVariables(provider) }),
			renderJob{name: VPCVariablesFile(provider), render: func() (string, error) { return p.RenderVPCVariables(provider) }},
			renderJob{name: NetworkingFile(provider), render: func() (string, error) { return p.RenderNetworking(provider) }},
			renderJob{name: SecurityFile(provider), render: func() (string, error) { return p.RenderSecurity(provider) }},
		)
		for _, role := range types.AllRoles() {
			jobs = append(jobs, renderJob{
				name:   NodesFile(provider, role),
				render: func() (string, error) { return p.RenderNodes(provider, role) },
			})
		}
	}

	return jobs
}

// RenderFabric renders every file of the fabric's terraform directory. Files are rendered
// concurrently and each is checked to parse as HCL. The first fault cancels the render and
// no files are returned.
func (s *FabricHCLService) RenderFabric(ctx context.Context, fabric *types.Fabric, renderContext types.RenderContext) (types.TerraformFiles, error) {
	pass, err := NewRenderPass(fabric, renderContext)
	if err != nil {
		return nil, err
	}

	if err := pass.checkSingleProvider(); err != nil {
		return nil, err
	}

	slog.Debug("rendering fabric", "fabric", fabric.Name, "image_suffix", pass.ImageSuffix)

	var mu sync.Mutex
	files := types.TerraformFiles{}
	g, ctx := errgroup.WithContext(ctx)

	for _, job := range pass.jobs() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := job.render()
			if err != nil {
				return err
			}
			if err := utils.ValidateHclSyntax(job.name, []byte(content)); err != nil {
				return &RenderError{Fabric: fabric.Name, Err: err}
			}

			mu.Lock()
			files = append(files, types.TerraformFile{Name: job.name, Content: content})
			mu.Unlock()
			slog.Debug("rendered terraform file", "fabric", fabric.Name, "file", job.name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(files, func(a, b types.TerraformFile) int {
		return strings.Compare(a.Name, b.Name)
	})

	return files, nil
}

// checkSingleProvider rejects nodes whose VPC spans several providers. Each provider file
// would declare the node's module and DNS records, and all files share one directory.
func (p *RenderPass) checkSingleProvider() error {
	for _, role := range types.AllRoles() {
		for _, name := range p.Fabric.SortedNodeNames(role) {
			node := p.Fabric.NodesForRole(role)[name]
			if node == nil {
				continue
			}
			vpc, ok := p.Fabric.VPCs[node.VPC]
			if !ok || vpc == nil || len(vpc.Cloud) < 2 {
				continue
			}
			err := fmt.Errorf("%w: vpc %s targets %v; multi-cloud vpcs are only supported by rendering one provider at a time with RenderNodeFile",
				types.ErrDuplicateDeclaration, node.VPC, vpc.Cloud)
			return &RenderError{Fabric: p.Fabric.Name, Node: name, Role: role, Err: err}
		}
	}
	return nil
}

// RenderNodeFile renders a single role/provider node file, the unit the deployment tooling
// regenerates when nodes are added to or removed from a running fabric.
func (s *FabricHCLService) RenderNodeFile(fabric *types.Fabric, renderContext types.RenderContext, provider types.Provider, role types.Role) (string, error) {
	pass, err := NewRenderPass(fabric, renderContext)
	if err != nil {
		return "", err
	}
	return pass.RenderNodes(provider, role)
}
