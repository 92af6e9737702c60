package samples

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{
			name: "valid",
			raw:  "https://myvault.vault.azure.net",
			want: "https://myvault.vault.azure.net",
		},
		{
			name: "trailing slash trimmed",
			raw:  "https://myvault.vault.azure.net/",
			want: "https://myvault.vault.azure.net",
		},
		{name: "unset", raw: "", wantErr: true},
		{name: "placeholder", raw: "https://<your-key-vault-name>.vault.azure.net", wantErr: true},
		{name: "not https", raw: "http://myvault.vault.azure.net", wantErr: true},
		{name: "no host", raw: "https://", wantErr: true},
		{name: "unparsable", raw: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEndpoint(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsCategory(err, CategoryConfig))
				// Validation failures must map to the configuration
				// outcome without any remote call being involved.
				f := Classify(err)
				assert.Equal(t, OutcomeInvalidConfiguration, f.Outcome)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvVaultURL, "https://myvault.vault.azure.net")
	t.Setenv(EnvTenantID, "tenant-123")
	t.Setenv(EnvSubscriptionID, "sub-456")

	env := LoadEnv()
	assert.Equal(t, "https://myvault.vault.azure.net", env.VaultURL)
	assert.Equal(t, "tenant-123", env.TenantID)
	assert.Equal(t, "sub-456", env.SubscriptionID)
}

func TestLoadSetupConfig(t *testing.T) {
	t.Setenv("TEST_SECRET_VALUE", "expanded-value")

	path := filepath.Join(t.TempDir(), "setup.yaml")
	content := `
resource_group: demo-rg
location: westus2
secret_name: demo-secret
secret_value: ${TEST_SECRET_VALUE}
retry:
  max_attempts: 4
  base_delay: 2s
  delay_increment: 1s
  max_delay: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadSetupConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "demo-rg", cfg.ResourceGroup)
	assert.Equal(t, "westus2", cfg.Location)
	assert.Equal(t, "demo-secret", cfg.SecretName)
	assert.Equal(t, "expanded-value", cfg.SecretValue)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, time.Second, cfg.Retry.DelayIncrement)
	assert.Equal(t, 5*time.Second, cfg.Retry.MaxDelay)

	// Vault name was not configured, so one is generated.
	assert.NotEmpty(t, cfg.VaultName)
	assert.LessOrEqual(t, len(cfg.VaultName), 24)
}

func TestLoadSetupConfigMissingFile(t *testing.T) {
	_, err := LoadSetupConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestDefaultSetupConfig(t *testing.T) {
	cfg := DefaultSetupConfig()
	assert.Equal(t, "cloud-samples-rg", cfg.ResourceGroup)
	assert.Equal(t, "eastus", cfg.Location)
	assert.NotEmpty(t, cfg.VaultName)
	assert.Equal(t, "sample-secret", cfg.SecretName)
	assert.Equal(t, DefaultRetryConfig(), cfg.Retry)
}
