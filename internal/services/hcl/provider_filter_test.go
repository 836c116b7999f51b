package hcl

import (
	"testing"

	"github.com/bayware/bwctl/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTargetsProvider(t *testing.T) {
	fabric := &types.Fabric{
		Name: "f1",
		VPCs: map[string]*types.VPC{
			"aws-only": {Index: 1, Region: "us-west-1", Cloud: types.CloudSet{types.ProviderAWS}},
			"dual":     {Index: 2, Region: "us-east4", Cloud: types.CloudSet{types.ProviderGCP, types.ProviderAzure}},
			"none":     {Index: 3, Region: "us-east-1", Cloud: types.CloudSet{}},
		},
	}

	tests := []struct {
		name     string
		vpc      string
		expected map[types.Provider]bool
	}{
		{
			name:     "single cloud",
			vpc:      "aws-only",
			expected: map[types.Provider]bool{types.ProviderAWS: true, types.ProviderGCP: false, types.ProviderAzure: false},
		},
		{
			name:     "two clouds",
			vpc:      "dual",
			expected: map[types.Provider]bool{types.ProviderAWS: false, types.ProviderGCP: true, types.ProviderAzure: true},
		},
		{
			name:     "empty cloud set",
			vpc:      "none",
			expected: map[types.Provider]bool{types.ProviderAWS: false, types.ProviderGCP: false, types.ProviderAzure: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &types.Node{Index: 1, VPC: tt.vpc}
			for _, provider := range types.AllProviders() {
				targeted, err := NodeTargetsProvider(fabric, node, provider)
				require.NoError(t, err)
				assert.Equalf(t, tt.expected[provider], targeted, "provider %s", provider)
			}
		})
	}
}

func TestNodeTargetsProvider_MissingVPC(t *testing.T) {
	fabric := &types.Fabric{Name: "f1", VPCs: map[string]*types.VPC{}}

	for _, provider := range types.AllProviders() {
		targeted, err := NodeTargetsProvider(fabric, &types.Node{VPC: "ghost"}, provider)
		assert.False(t, targeted)
		assert.ErrorIs(t, err, types.ErrMissingVPC)
	}
}

func TestRenderNodes_ProviderFilter(t *testing.T) {
	pass, err := NewRenderPass(multiCloudFabric(), testContext())
	require.NoError(t, err)

	expected := map[types.Provider]map[types.Role][]string{
		types.ProviderAWS: {
			types.RoleOrchestrator: {"orch-ctl", "orch-tel"},
			types.RoleProcessor:    {"proc-3"},
			types.RoleWorkload:     {"wkld-1", "wkld-2"},
		},
		types.ProviderGCP: {
			types.RoleProcessor: {"proc-1"},
		},
		types.ProviderAzure: {
			types.RoleProcessor: {"proc-2"},
		},
	}

	for _, provider := range types.AllProviders() {
		for _, role := range types.AllRoles() {
			content, err := pass.RenderNodes(provider, role)
			require.NoError(t, err)

			var modules []string
			for _, block := range parseRendered(t, content).blocks("module") {
				modules = append(modules, block.Labels[0])
			}
			assert.Equalf(t, expected[provider][role], modules, "%s %s", provider, role)
		}
	}
}
