package samples

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Environment variable names consumed by the samples.
const (
	EnvVaultURL       = "KEY_VAULT_URL"
	EnvTenantID       = "AZURE_TENANT_ID"
	EnvSubscriptionID = "AZURE_SUBSCRIPTION_ID"
)

// Env holds the environment-driven configuration shared by the samples.
type Env struct {
	// VaultURL is the Key Vault endpoint, e.g. https://myvault.vault.azure.net.
	VaultURL string

	// TenantID is the directory tenant to authenticate against.
	TenantID string

	// SubscriptionID scopes the resource-management clients.
	SubscriptionID string
}

// LoadEnv reads configuration from the process environment, merging in
// a .env file from the working directory when one exists.
func LoadEnv() *Env {
	// A missing .env file is not an error; exported variables win.
	_ = godotenv.Load()

	return &Env{
		VaultURL:       os.Getenv(EnvVaultURL),
		TenantID:       os.Getenv(EnvTenantID),
		SubscriptionID: os.Getenv(EnvSubscriptionID),
	}
}

// ValidateEndpoint checks that raw is a usable https endpoint. Unset
// values, values still holding a <placeholder> token, and unparsable
// addresses all fail before any remote call is attempted.
func ValidateEndpoint(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidConfig(EnvVaultURL + " is not set").
			WithDetail("hint", "run the setup sample or export "+EnvVaultURL)
	}
	if strings.ContainsAny(raw, "<>") {
		return "", ErrInvalidConfig(EnvVaultURL + " still contains a placeholder value").
			WithDetail("value", raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrInvalidConfig("invalid URL for " + EnvVaultURL).WithCause(err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return "", ErrInvalidConfig(fmt.Sprintf("invalid URL for %s: %q is not an https endpoint", EnvVaultURL, raw))
	}
	return strings.TrimSuffix(raw, "/"), nil
}

// SetupConfig describes the resources the setup sample provisions.
type SetupConfig struct {
	ResourceGroup string `yaml:"resource_group"`
	Location      string `yaml:"location"`
	VaultName     string `yaml:"vault_name"`
	SecretName    string `yaml:"secret_name"`
	SecretValue   string `yaml:"secret_value"`

	Retry RetryConfig `yaml:"retry"`
}

// DefaultSetupConfig returns a setup configuration with generated
// resource names and the default retry budget.
func DefaultSetupConfig() *SetupConfig {
	cfg := &SetupConfig{}
	cfg.applyDefaults()
	return cfg
}

// LoadSetupConfig reads a setup configuration from a YAML file.
// Environment variables referenced in the file are expanded before
// parsing.
func LoadSetupConfig(path string) (*SetupConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg SetupConfig
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *SetupConfig) applyDefaults() {
	// Vault names must be globally unique and at most 24 characters.
	suffix := uuid.NewString()[:8]
	if c.ResourceGroup == "" {
		c.ResourceGroup = "cloud-samples-rg"
	}
	if c.Location == "" {
		c.Location = "eastus"
	}
	if c.VaultName == "" {
		c.VaultName = "kv-samples-" + suffix
	}
	if c.SecretName == "" {
		c.SecretName = "sample-secret"
	}
	if c.SecretValue == "" {
		c.SecretValue = "created by cloud-samples setup"
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry = DefaultRetryConfig()
	}
}
