package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testState = `
apiVersion: fabric.bayware.io/v2
fabric:
  f1:
    config:
      companyName: acme
    vpc:
      v1:
        index: 1
        region: us-west-1
        cloud: aws
        properties: {}
      v2:
        index: 2
        region: us-east4
        cloud: [gcp, azr]
        properties:
          network_enabled: "false"
          vpc_id: projects/p/global/networks/n
    orchestrator:
      n1:
        index: 1
        vpc: v1
        type: controller
        properties:
          dns_enabled: "true"
    processor:
      p1:
        index: 1
        vpc: v2
        properties:
          os_type: rhel
    workload:
      w2:
        index: 2
        vpc: v1
      w1:
        index: 1
        vpc: v1
  f2:
`

func TestNewStateFromBytes(t *testing.T) {
	state, errs := NewStateFromBytes([]byte(testState))
	require.Empty(t, errs)
	require.NotNil(t, state)

	assert.Equal(t, "fabric.bayware.io/v2", state.APIVersion)
	assert.Equal(t, []string{"f1", "f2"}, state.FabricNames())

	fabric, err := state.GetFabric("f1")
	require.NoError(t, err)
	assert.Equal(t, "f1", fabric.Name)
	assert.Equal(t, "acme", fabric.Config.CompanyName)

	require.Contains(t, fabric.VPCs, "v2")
	assert.Equal(t, CloudSet{ProviderGCP, ProviderAzure}, fabric.VPCs["v2"].Cloud)
	assert.Equal(t, CloudSet{ProviderAWS}, fabric.VPCs["v1"].Cloud)

	n1 := fabric.Orchestrators["n1"]
	require.NotNil(t, n1)
	assert.True(t, n1.IsController())
	assert.True(t, n1.DNSEnabled())
	assert.Equal(t, "rhel", fabric.Processors["p1"].OSType())
	assert.Equal(t, []string{"w1", "w2"}, fabric.SortedNodeNames(RoleWorkload))

	empty, err := state.GetFabric("f2")
	require.NoError(t, err)
	assert.Equal(t, "f2", empty.Name)

	_, err = state.GetFabric("missing")
	assert.ErrorIs(t, err, ErrFabricNotFound)
}

func TestNewStateFromFile(t *testing.T) {
	state, errs := NewStateFromFile(createTempFile(t, testState))
	require.Empty(t, errs)
	assert.Len(t, state.Fabrics, 2)

	state, errs = NewStateFromFile("/nonexistent/state.yml")
	assert.Nil(t, state)
	assert.Len(t, errs, 1)
}

func TestState_Validate(t *testing.T) {
	tests := []struct {
		name           string
		yaml           string
		expectedErrors int
	}{
		{
			name: "unknown cloud",
			yaml: `
fabric:
  f1:
    vpc:
      v1: {index: 1, region: r, cloud: openstack}
`,
			expectedErrors: 1,
		},
		{
			name: "duplicate vpc index",
			yaml: `
fabric:
  f1:
    vpc:
      v1: {index: 1, region: r, cloud: aws}
      v2: {index: 1, region: r, cloud: aws}
`,
			expectedErrors: 1,
		},
		{
			name: "non positive vpc index",
			yaml: `
fabric:
  f1:
    vpc:
      v1: {index: 0, region: r, cloud: aws}
`,
			expectedErrors: 1,
		},
		{
			name: "node name shared by two roles",
			yaml: `
fabric:
  f1:
    vpc:
      v1: {index: 1, region: r, cloud: aws}
    orchestrator:
      n1: {index: 1, vpc: v1}
    workload:
      n1: {index: 1, vpc: v1}
`,
			expectedErrors: 1,
		},
		{
			name: "node without definition",
			yaml: `
fabric:
  f1:
    vpc:
      v1: {index: 1, region: r, cloud: aws}
    processor:
      p1:
`,
			expectedErrors: 1,
		},
		{
			name: "node referencing a missing vpc is left to the renderer",
			yaml: `
fabric:
  f1:
    vpc:
      v1: {index: 1, region: r, cloud: aws}
    processor:
      p1: {index: 1, vpc: v9}
`,
			expectedErrors: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, errs := NewStateFromBytes([]byte(tt.yaml))

			if tt.expectedErrors == 0 {
				assert.Empty(t, errs)
				assert.NotNil(t, state)
				return
			}
			assert.Nil(t, state)
			assert.Len(t, errs, tt.expectedErrors)
		})
	}
}
