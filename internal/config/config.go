package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bayware/bwctl/internal/types"
	"github.com/bayware/bwctl/internal/utils"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "BWCTL"
	DefaultConfigFile = "~/.bwctl/config"
	DefaultHostedZone = "poc.bayware.io"
	ReleaseBranch     = "master"
)

type Config struct {
	Components      Components    `mapstructure:"components"`
	HostedZone      string        `mapstructure:"hosted_zone"`
	OSType          string        `mapstructure:"os_type"` // os_type stamped on new nodes, never an image baseline
	Production      bool          `mapstructure:"production"`
	CloudStorage    CloudStorage  `mapstructure:"cloud_storage"`
	FabricManager   FabricManager `mapstructure:"fabric_manager"`
	SSHKeys         SSHKeys       `mapstructure:"ssh_keys"`
	Username        string        `mapstructure:"username"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	CurrentFabric   string        `mapstructure:"current_fabric"`
}

type Components struct {
	Branch string `mapstructure:"branch"`
	Family string `mapstructure:"family"`
}

type CloudStorage struct {
	Terraform StorageBucket `mapstructure:"terraform"`
}

type StorageBucket struct {
	Enabled bool   `mapstructure:"enabled"`
	Bucket  string `mapstructure:"bucket"`
	Region  string `mapstructure:"region"`
}

type FabricManager struct {
	IP string `mapstructure:"ip"`
}

type SSHKeys struct {
	PrivateKey string `mapstructure:"private_key"`
	PublicKey  string `mapstructure:"public_key"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("components.branch", ReleaseBranch)
	v.SetDefault("components.family", "")
	v.SetDefault("hosted_zone", DefaultHostedZone)
	v.SetDefault("os_type", types.DefaultBaselineOS)
	v.SetDefault("production", true)
	v.SetDefault("cloud_storage.terraform.enabled", true)
	v.SetDefault("cloud_storage.terraform.bucket", "terraform-states-sandboxes")
	v.SetDefault("cloud_storage.terraform.region", "us-west-1")
	v.SetDefault("fabric_manager.ip", "")
	v.SetDefault("ssh_keys.private_key", "")
	v.SetDefault("ssh_keys.public_key", "")
	v.SetDefault("username", types.DefaultSSHUser)
	v.SetDefault("current_fabric", "")
	v.SetDefault("credentials_file", "~/.bwctl/credentials.yml")
}

// Load reads the YAML config file; a missing file yields the defaults. Every key can be
// overridden with a BWCTL_ prefixed environment variable, e.g. BWCTL_HOSTED_ZONE or
// BWCTL_COMPONENTS_FAMILY.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := utils.ExpandHomeDir(configFile)
	if err != nil {
		return nil, err
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ImageChannel maps the component branch to the image channel: the release branch
// publishes stable images, every other branch unstable ones.
func (c Config) ImageChannel() string {
	if c.Components.Branch == ReleaseBranch {
		return types.ImageChannelStable
	}
	return types.ImageChannelUnstable
}

// SSHPublicKeyFile returns the public key path: ssh_keys.public_key when set, otherwise the
// private key path with a .pub suffix.
func (c Config) SSHPublicKeyFile() string {
	if c.SSHKeys.PublicKey != "" {
		return c.SSHKeys.PublicKey
	}
	if c.SSHKeys.PrivateKey != "" {
		return c.SSHKeys.PrivateKey + ".pub"
	}
	return ""
}

// RenderContext builds the settings of one fabric render from the config, the
// credentials and the fabric's VPC properties.
func (c Config) RenderContext(fabric *types.Fabric, creds *types.Credentials) types.RenderContext {
	return types.RenderContext{
		AWSUseInstanceRole: creds.UsesInstanceRole(),
		Image: types.ImageSettings{
			Version:    c.Components.Family,
			Channel:    c.ImageChannel(),
			BaselineOS: types.DefaultBaselineOS,
		},
		SSHPublicKeyFile: c.SSHPublicKeyFile(),
		SSHUser:          c.Username,
		DNSZone:          c.HostedZone,
		Networks:         types.NetworkSettingsFromVPCs(fabric),
		Production:       c.Production,
		BastionIP:        c.FabricManager.IP,
		StateBackend: types.BackendSettings{
			Enabled: c.CloudStorage.Terraform.Enabled,
			Bucket:  c.CloudStorage.Terraform.Bucket,
			Region:  c.CloudStorage.Terraform.Region,
		},
	}
}

// ResolvePath expands a leading ~ in a configured path.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := utils.ExpandHomeDir(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(expanded), nil
}
