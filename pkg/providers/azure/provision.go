package azure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anirudhbiyani/cloud-samples/pkg/samples"
)

// SecretStoreFactory builds a SecretStore for a vault endpoint. The
// provisioner cannot construct the store up front because the endpoint
// only exists once the vault does.
type SecretStoreFactory func(vaultURL string) (SecretStore, error)

// Provisioner creates the resources the other samples need: a resource
// group, an RBAC-mode Key Vault, a Secrets Officer role assignment for
// the current principal, and a sample secret.
//
// The secret write is the only step wrapped in the retry runner: it is
// the first operation gated on the fresh role assignment, and the
// grant's effects propagate asynchronously through the authorization
// backend. Growing the delay between attempts tolerates that
// propagation latency without guessing a single fixed wait.
type Provisioner struct {
	control ControlPlane
	secrets SecretStoreFactory
	runner  *samples.Runner
	logger  *slog.Logger
}

// ProvisionerOption configures the Provisioner.
type ProvisionerOption func(*Provisioner)

// WithControlPlane sets the resource-management client.
func WithControlPlane(c ControlPlane) ProvisionerOption {
	return func(p *Provisioner) {
		p.control = c
	}
}

// WithSecretStoreFactory sets the secret store constructor.
func WithSecretStoreFactory(f SecretStoreFactory) ProvisionerOption {
	return func(p *Provisioner) {
		p.secrets = f
	}
}

// WithRunner sets the retry runner used for the secret write.
func WithRunner(r *samples.Runner) ProvisionerOption {
	return func(p *Provisioner) {
		p.runner = r
	}
}

// WithProvisionLogger sets the logger.
func WithProvisionLogger(logger *slog.Logger) ProvisionerOption {
	return func(p *Provisioner) {
		p.logger = logger
	}
}

// NewProvisioner creates a provisioner. A control plane and a secret
// store factory are required; Run reports their absence.
func NewProvisioner(opts ...ProvisionerOption) *Provisioner {
	p := &Provisioner{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.runner == nil {
		p.runner = samples.NewRunner(samples.DefaultRetryConfig(), samples.WithLogger(p.logger))
	}
	return p
}

// Run executes the provisioning sequence and returns a summary of the
// created resources. Retry exhaustion on the secret write is a warning,
// not a failure: the summary is still produced with SecretWritten set
// to false and manual remediation logged.
func (p *Provisioner) Run(ctx context.Context, cfg *samples.SetupConfig, tenantID, subscriptionID, principalID string) (*samples.Summary, error) {
	if p.control == nil {
		return nil, samples.ErrInternal("provisioner has no control plane configured")
	}
	if p.secrets == nil {
		return nil, samples.ErrInternal("provisioner has no secret store factory configured")
	}

	p.logger.Info("creating resource group", "name", cfg.ResourceGroup, "location", cfg.Location)
	if err := p.control.EnsureResourceGroup(ctx, cfg.ResourceGroup, cfg.Location); err != nil {
		return nil, err
	}

	p.logger.Info("creating key vault", "name", cfg.VaultName)
	vault, err := p.control.EnsureVault(ctx, cfg.ResourceGroup, cfg.VaultName, cfg.Location, tenantID)
	if err != nil {
		return nil, err
	}

	p.logger.Info("assigning secrets officer role", "principal", principalID, "scope", vault.ID)
	if err := p.control.AssignSecretsOfficer(ctx, vault.ID, principalID); err != nil {
		return nil, err
	}

	store, err := p.secrets(vault.URI)
	if err != nil {
		return nil, err
	}

	p.logger.Info("writing sample secret", "name", cfg.SecretName)
	secretWritten := true
	err = p.runner.Run(ctx, "write sample secret", func(ctx context.Context) error {
		return store.SetSecret(ctx, cfg.SecretName, cfg.SecretValue)
	})
	if err != nil {
		var exhausted *samples.ExhaustedError
		if !errors.As(err, &exhausted) {
			return nil, err
		}
		// Non-fatal: the vault is usable, the grant just has not
		// propagated yet.
		secretWritten = false
		p.logger.Warn("sample secret was not written; role propagation did not complete in time",
			"attempts", exhausted.Attempts, "error", exhausted.LastErr)
		p.logger.Warn("write it manually once access propagates",
			"command", fmt.Sprintf("az keyvault secret set --vault-name %s --name %s --value <value>",
				cfg.VaultName, cfg.SecretName))
	}

	return &samples.Summary{
		ResourceGroup:  cfg.ResourceGroup,
		VaultName:      cfg.VaultName,
		VaultURL:       vault.URI,
		TenantID:       tenantID,
		SubscriptionID: subscriptionID,
		SecretName:     cfg.SecretName,
		SecretWritten:  secretWritten,
	}, nil
}
