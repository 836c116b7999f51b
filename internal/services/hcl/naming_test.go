package hcl

import (
	"testing"

	"github.com/bayware/bwctl/internal/types"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableNamespace(t *testing.T) {
	tests := []struct {
		provider types.Provider
		index    int
		expected string
	}{
		{provider: types.ProviderAWS, index: 1, expected: "aws_vpc1"},
		{provider: types.ProviderGCP, index: 2, expected: "gcp_vpc2"},
		{provider: types.ProviderAzure, index: 3, expected: "azr_vpc3"},
		{provider: types.ProviderAWS, index: 12, expected: "aws_vpc12"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, VariableNamespace(tt.provider, tt.index))
		})
	}
}

func TestModuleNames(t *testing.T) {
	assert.Equal(t, "aws_vpc1_workload_disk_size", RoleVariable("aws_vpc1", types.RoleWorkload, "disk_size"))
	assert.Equal(t, "us_west_1", ProviderAlias("us-west-1"))
	assert.Equal(t, "f1_v1_aws_networking", NetworkingModuleName("f1", "v1", types.ProviderAWS))
	assert.Equal(t, "prod_azr_east_azr_security", SecurityModuleName("prod", "azr-east", types.ProviderAzure))
	assert.Equal(t, "./modules/gcp/processor", ModuleSource("./modules", types.ProviderGCP, "processor"))
}

func TestSecurityGroupOutputs(t *testing.T) {
	controller := &types.Node{Type: types.NodeTypeController}
	plain := &types.Node{Type: "telemetry"}

	assert.Equal(t, []string{SecurityGroupOrchestrator, SecurityGroupProxy}, SecurityGroupOutputs(types.RoleOrchestrator, controller))
	assert.Equal(t, []string{SecurityGroupOrchestrator}, SecurityGroupOutputs(types.RoleOrchestrator, plain))
	assert.Equal(t, []string{SecurityGroupProcessor}, SecurityGroupOutputs(types.RoleProcessor, plain))
	assert.Equal(t, []string{SecurityGroupWorkload}, SecurityGroupOutputs(types.RoleWorkload, controller))
}

func TestResolveReferences_AdoptedNetworkMissingIDs(t *testing.T) {
	spec, err := specFor(types.ProviderAWS)
	require.NoError(t, err)

	complete := types.NetworkSettings{
		VPCID:            "vpc-1",
		SubnetID:         "subnet-1",
		SecurityGroupIDs: map[string]string{SecurityGroupOrchestrator: "sg-1", SecurityGroupProxy: "sg-2"},
	}

	tests := []struct {
		name     string
		settings func() types.NetworkSettings
		wantErr  bool
	}{
		{name: "all ids supplied", settings: func() types.NetworkSettings { return complete }},
		{
			name: "vpc id missing",
			settings: func() types.NetworkSettings {
				s := complete
				s.VPCID = ""
				return s
			},
			wantErr: true,
		},
		{
			name: "subnet id missing",
			settings: func() types.NetworkSettings {
				s := complete
				s.SubnetID = ""
				return s
			},
			wantErr: true,
		},
		{
			name: "proxy group missing for controller",
			settings: func() types.NetworkSettings {
				s := complete
				s.SecurityGroupIDs = map[string]string{SecurityGroupOrchestrator: "sg-1"}
				return s
			},
			wantErr: true,
		},
	}

	controller := &types.Node{Type: types.NodeTypeController}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refs, err := resolveReferences("f1", "v1", types.ProviderAWS, types.RoleOrchestrator, controller, tt.settings(), spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrMissingRenderField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, `["sg-1", "sg-2"]`, string(hclwrite.Format(refs.securityGroups.Bytes())))
		})
	}
}
