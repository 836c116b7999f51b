package types

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Credentials mirrors the credentials.yml file. Secret values are only checked for
// presence here; they are supplied to terraform at apply time and never rendered.
type Credentials struct {
	AWS   *AWSCredentials   `yaml:"aws,omitempty"`
	GCP   *GCPCredentials   `yaml:"gcp,omitempty"`
	Azure *AzureCredentials `yaml:"azr,omitempty"`
}

type AWSCredentials struct {
	EC2Role         bool   `yaml:"aws_ec2_role"`
	AccessKeyID     string `yaml:"aws_access_key_id,omitempty"`
	SecretAccessKey string `yaml:"aws_secret_access_key,omitempty"`
}

type GCPCredentials struct {
	ProjectID   string `yaml:"project_id,omitempty"`
	KeyfileJSON string `yaml:"google_cloud_keyfile_json,omitempty"`
}

type AzureCredentials struct {
	ClientID          string `yaml:"azr_client_id,omitempty"`
	ClientSecret      string `yaml:"azr_client_secret,omitempty"`
	ResourceGroupName string `yaml:"azr_resource_group_name,omitempty"`
	SubscriptionID    string `yaml:"azr_subscription_id,omitempty"`
	TenantID          string `yaml:"azr_tennant_id,omitempty"`
}

func NewCredentialsFromFile(credentialsYamlPath string) (*Credentials, []error) {
	data, err := os.ReadFile(credentialsYamlPath)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read credentials file: %w", err)}
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, []error{fmt.Errorf("failed to unmarshal YAML: %w", err)}
	}

	if valid, errs := creds.Validate(); !valid {
		return nil, errs
	}

	return &creds, nil
}

// UsesInstanceRole reports whether AWS access relies on the ambient EC2 instance role.
func (c *Credentials) UsesInstanceRole() bool {
	return c != nil && c.AWS != nil && c.AWS.EC2Role
}

func (c Credentials) Validate() (bool, []error) {
	errs := []error{}

	if c.AWS != nil && !c.AWS.EC2Role {
		if c.AWS.AccessKeyID == "" || c.AWS.SecretAccessKey == "" {
			errs = append(errs, fmt.Errorf("aws: aws_access_key_id and aws_secret_access_key are required when aws_ec2_role is false"))
		}
	}
	if c.GCP != nil && c.GCP.ProjectID == "" {
		errs = append(errs, fmt.Errorf("gcp: project_id is required"))
	}
	if c.Azure != nil && (c.Azure.SubscriptionID == "" || c.Azure.TenantID == "") {
		errs = append(errs, fmt.Errorf("azr: azr_subscription_id and azr_tennant_id are required"))
	}

	return len(errs) == 0, errs
}
