package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bayware/bwctl/internal/services/hcl"
	"github.com/bayware/bwctl/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
components:
  branch: develop
  family: "3.4"
hosted_zone: example.net
os_type: centos
production: false
cloud_storage:
  terraform:
    enabled: true
    bucket: states
    region: eu-west-1
fabric_manager:
  ip: 203.0.113.10
ssh_keys:
  private_key: /home/user/.ssh/bwctl
username: centos
credentials_file: /home/user/.bwctl/credentials.yml
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "develop", cfg.Components.Branch)
	assert.Equal(t, "3.4", cfg.Components.Family)
	assert.Equal(t, "example.net", cfg.HostedZone)
	assert.Equal(t, "centos", cfg.OSType)
	assert.False(t, cfg.Production)
	assert.Equal(t, StorageBucket{Enabled: true, Bucket: "states", Region: "eu-west-1"}, cfg.CloudStorage.Terraform)
	assert.Equal(t, "203.0.113.10", cfg.FabricManager.IP)
	assert.Equal(t, "/home/user/.ssh/bwctl.pub", cfg.SSHPublicKeyFile())
	assert.Equal(t, "centos", cfg.Username)
	assert.Equal(t, types.ImageChannelUnstable, cfg.ImageChannel())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)

	assert.Equal(t, ReleaseBranch, cfg.Components.Branch)
	assert.Equal(t, DefaultHostedZone, cfg.HostedZone)
	assert.Equal(t, types.DefaultBaselineOS, cfg.OSType)
	assert.True(t, cfg.Production)
	assert.Equal(t, StorageBucket{Enabled: true, Bucket: "terraform-states-sandboxes", Region: "us-west-1"}, cfg.CloudStorage.Terraform)
	assert.Equal(t, types.DefaultSSHUser, cfg.Username)
	assert.Equal(t, types.ImageChannelStable, cfg.ImageChannel())
	assert.Equal(t, "", cfg.SSHPublicKeyFile())
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "hosted_zone: example.net\n")
	t.Setenv("BWCTL_HOSTED_ZONE", "override.example.net")
	t.Setenv("BWCTL_COMPONENTS_FAMILY", "3.5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "override.example.net", cfg.HostedZone)
	assert.Equal(t, "3.5", cfg.Components.Family)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "components: [unterminated\n"))
	assert.Error(t, err)
}

func TestConfig_RenderContext(t *testing.T) {
	cfg := Config{
		Components:    Components{Branch: ReleaseBranch, Family: "3.4"},
		HostedZone:    "poc.bayware.io",
		OSType:        "ubuntu",
		Production:    true,
		FabricManager: FabricManager{IP: "198.51.100.7"},
		SSHKeys:       SSHKeys{PublicKey: "/keys/id.pub", PrivateKey: "/keys/id"},
		Username:      "ubuntu",
		CloudStorage:  CloudStorage{Terraform: StorageBucket{Enabled: true, Bucket: "b", Region: "r"}},
	}
	fabric := &types.Fabric{
		Name: "f1",
		VPCs: map[string]*types.VPC{
			"v1": {Index: 1, Properties: map[string]any{"network_enabled": false, "vpc_id": "vpc-1"}},
		},
	}
	creds := &types.Credentials{AWS: &types.AWSCredentials{EC2Role: true}}

	rc := cfg.RenderContext(fabric, creds)

	assert.True(t, rc.AWSUseInstanceRole)
	assert.Equal(t, types.ImageSettings{Version: "3.4", Channel: types.ImageChannelStable, BaselineOS: "ubuntu"}, rc.Image)
	assert.Equal(t, "/keys/id.pub", rc.SSHPublicKeyFile)
	assert.Equal(t, "poc.bayware.io", rc.DNSZone)
	assert.Equal(t, "198.51.100.7", rc.BastionIP)
	assert.True(t, rc.Production)
	assert.Equal(t, types.BackendSettings{Enabled: true, Bucket: "b", Region: "r"}, rc.StateBackend)
	assert.False(t, rc.NetworkFor("v1").NetworkEnabled)
	assert.Equal(t, "vpc-1", rc.NetworkFor("v1").VPCID)

	valid, errs := rc.Validate()
	assert.True(t, valid)
	assert.Empty(t, errs)
}

func TestConfig_RenderContext_NodeOSType(t *testing.T) {
	cfg := Config{
		Components: Components{Branch: ReleaseBranch, Family: "3.4"},
		HostedZone: DefaultHostedZone,
		OSType:     "centos",
		SSHKeys:    SSHKeys{PublicKey: "/keys/id.pub"},
	}
	fabric := &types.Fabric{
		Name: "f1",
		VPCs: map[string]*types.VPC{
			"v1": {Index: 1, Region: "us-east4", Cloud: types.CloudSet{types.ProviderGCP}},
		},
		Workloads: map[string]*types.Node{
			"w1": {Index: 1, VPC: "v1", Properties: map[string]any{"os_type": "centos"}},
			"w2": {Index: 2, VPC: "v1"},
		},
	}

	rc := cfg.RenderContext(fabric, nil)
	assert.Equal(t, types.DefaultBaselineOS, rc.Image.BaselineOS)

	nodes, err := hcl.NewFabricHCLService().Inventory(fabric, rc)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "workload-centos-3-4", nodes[0].Image)
	assert.Equal(t, "workload-3-4", nodes[1].Image)
}

func TestResolvePath(t *testing.T) {
	path, err := ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, "", path)

	path, err = ResolvePath("/tmp/../tmp/state.yml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/state.yml", path)
}
