package types

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentialsFromFile(t *testing.T) {
	tests := []struct {
		name           string
		setupFile      func() string
		expectedError  bool
		expectedErrors int
	}{
		{
			name: "valid credentials file",
			setupFile: func() string {
				content := `
aws:
  aws_ec2_role: false
  aws_access_key_id: AKIAEXAMPLE
  aws_secret_access_key: secret
gcp:
  project_id: my-project
  google_cloud_keyfile_json: /home/user/.bwctl/gcp.json
azr:
  azr_client_id: client
  azr_client_secret: secret
  azr_resource_group_name: rg
  azr_subscription_id: sub
  azr_tennant_id: tenant
`
				return createTempFile(t, content)
			},
			expectedError: false,
		},
		{
			name: "instance role without keys",
			setupFile: func() string {
				return createTempFile(t, "aws:\n  aws_ec2_role: true\n")
			},
			expectedError: false,
		},
		{
			name: "file not found",
			setupFile: func() string {
				return "/nonexistent/file.yaml"
			},
			expectedError:  true,
			expectedErrors: 1,
		},
		{
			name: "invalid YAML",
			setupFile: func() string {
				return createTempFile(t, `invalid: yaml: content: [`)
			},
			expectedError:  true,
			expectedErrors: 1,
		},
		{
			name: "aws keys missing and gcp project missing",
			setupFile: func() string {
				content := `
aws:
  aws_ec2_role: false
gcp:
  google_cloud_keyfile_json: /tmp/key.json
`
				return createTempFile(t, content)
			},
			expectedError:  true,
			expectedErrors: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filePath := tt.setupFile()
			creds, errs := NewCredentialsFromFile(filePath)

			if tt.expectedError {
				assert.Nil(t, creds)
				assert.NotEmpty(t, errs)
				if tt.expectedErrors > 0 {
					assert.Len(t, errs, tt.expectedErrors)
				}
			} else {
				assert.NotNil(t, creds)
				assert.Empty(t, errs)
			}
		})
	}
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name           string
		credentials    Credentials
		expectedValid  bool
		expectedErrors int
	}{
		{
			name:          "empty credentials",
			credentials:   Credentials{},
			expectedValid: true,
		},
		{
			name: "aws access keys",
			credentials: Credentials{
				AWS: &AWSCredentials{AccessKeyID: "id", SecretAccessKey: "secret"},
			},
			expectedValid: true,
		},
		{
			name: "aws secret key missing",
			credentials: Credentials{
				AWS: &AWSCredentials{AccessKeyID: "id"},
			},
			expectedValid:  false,
			expectedErrors: 1,
		},
		{
			name: "azure tenant missing",
			credentials: Credentials{
				Azure: &AzureCredentials{SubscriptionID: "sub"},
			},
			expectedValid:  false,
			expectedErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, errs := tt.credentials.Validate()

			assert.Equal(t, tt.expectedValid, valid)
			assert.Len(t, errs, tt.expectedErrors)
		})
	}
}

func TestCredentials_UsesInstanceRole(t *testing.T) {
	var nilCreds *Credentials
	assert.False(t, nilCreds.UsesInstanceRole())
	assert.False(t, (&Credentials{}).UsesInstanceRole())
	assert.False(t, (&Credentials{AWS: &AWSCredentials{}}).UsesInstanceRole())
	assert.True(t, (&Credentials{AWS: &AWSCredentials{EC2Role: true}}).UsesInstanceRole())
}

func createTempFile(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp(t.TempDir(), "test-*.yaml")
	require.NoError(t, err)
	defer tmpFile.Close()

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)

	return tmpFile.Name()
}
