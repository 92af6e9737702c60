package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/anirudhbiyani/cloud-samples/pkg/samples"
)

// argValue returns the value following a flag, advancing the index.
func argValue(args []string, i *int, flag string) (string, error) {
	if *i+1 >= len(args) {
		return "", samples.ErrInvalidConfig(flag + " requires an argument")
	}
	*i++
	return args[*i], nil
}

// listGroupsSample lists the resource groups in the subscription.
type listGroupsSample struct{}

func (listGroupsSample) Name() string { return "list-groups" }
func (listGroupsSample) Description() string {
	return "List resource groups via the resource-management client"
}

func (listGroupsSample) Run(ctx context.Context, args []string) error {
	env := samples.LoadEnv()
	auth := AuthDefault
	subscription := env.SubscriptionID
	tenant := env.TenantID

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "--auth":
			auth, err = argValue(args, &i, "--auth")
		case "--subscription":
			subscription, err = argValue(args, &i, "--subscription")
		case "--tenant":
			tenant, err = argValue(args, &i, "--tenant")
		default:
			err = samples.ErrInvalidConfig("unknown option: " + args[i])
		}
		if err != nil {
			return err
		}
	}

	if subscription == "" {
		return samples.ErrInvalidConfig(samples.EnvSubscriptionID + " is not set").
			WithDetail("hint", "export "+samples.EnvSubscriptionID+" or pass --subscription")
	}

	cred, err := NewCredential(CredentialOptions{Mode: auth, TenantID: tenant})
	if err != nil {
		return err
	}
	control, err := NewControlPlane(subscription, cred)
	if err != nil {
		return err
	}

	groups, err := control.ListGroups(ctx)
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		fmt.Println("No resource groups found.")
		return nil
	}
	fmt.Printf("Resource groups in subscription %s:\n", subscription)
	for _, g := range groups {
		fmt.Printf("  %-40s %s\n", g.Name, g.Location)
	}
	return nil
}

// getSecretSample retrieves a secret from the vault.
type getSecretSample struct{}

func (getSecretSample) Name() string { return "get-secret" }
func (getSecretSample) Description() string {
	return "Retrieve a secret from the managed secrets store"
}

func (getSecretSample) Run(ctx context.Context, args []string) error {
	env := samples.LoadEnv()
	auth := AuthDefault
	tenant := env.TenantID
	vaultURL := env.VaultURL
	summaryPath := samples.DefaultSummaryPath()
	name := ""

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "--auth":
			auth, err = argValue(args, &i, "--auth")
		case "--tenant":
			tenant, err = argValue(args, &i, "--tenant")
		case "--name":
			name, err = argValue(args, &i, "--name")
		case "--vault-url":
			vaultURL, err = argValue(args, &i, "--vault-url")
		case "--summary":
			summaryPath, err = argValue(args, &i, "--summary")
		default:
			err = samples.ErrInvalidConfig("unknown option: " + args[i])
		}
		if err != nil {
			return err
		}
	}

	// Fall back to the setup sample's summary for anything unset.
	if vaultURL == "" || name == "" {
		if summary, err := samples.LoadSummary(summaryPath); err == nil {
			if vaultURL == "" {
				vaultURL = summary.VaultURL
			}
			if name == "" {
				name = summary.SecretName
			}
		}
	}
	if name == "" {
		name = "sample-secret"
	}

	endpoint, err := samples.ValidateEndpoint(vaultURL)
	if err != nil {
		return err
	}

	cred, err := NewCredential(CredentialOptions{Mode: auth, TenantID: tenant})
	if err != nil {
		return err
	}
	store, err := NewSecretStore(endpoint, cred)
	if err != nil {
		return err
	}

	value, err := store.GetSecret(ctx, name)
	if err != nil {
		return err
	}

	fmt.Printf("Retrieved secret %q from %s\n", name, endpoint)
	fmt.Printf("Value: %s\n", value)
	return nil
}

// loginSample performs an interactive sign-in and inspects the token.
type loginSample struct{}

func (loginSample) Name() string { return "login" }
func (loginSample) Description() string {
	return "Acquire a token interactively and show the signed-in principal"
}

func (loginSample) Run(ctx context.Context, args []string) error {
	env := samples.LoadEnv()
	auth := AuthInteractive
	tenant := env.TenantID
	scope := ARMScope

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "--auth":
			auth, err = argValue(args, &i, "--auth")
		case "--tenant":
			tenant, err = argValue(args, &i, "--tenant")
		case "--scope":
			scope, err = argValue(args, &i, "--scope")
		default:
			err = samples.ErrInvalidConfig("unknown option: " + args[i])
		}
		if err != nil {
			return err
		}
	}

	cred, err := NewCredential(CredentialOptions{Mode: auth, TenantID: tenant})
	if err != nil {
		return err
	}

	claims, err := TokenClaims(ctx, cred, scope)
	if err != nil {
		return err
	}

	fmt.Println("Authentication succeeded.")
	if upn, ok := claims["upn"].(string); ok {
		fmt.Printf("  Principal: %s\n", upn)
	}
	if oid, ok := claims["oid"].(string); ok {
		fmt.Printf("  Object ID: %s\n", oid)
	}
	if tid, ok := claims["tid"].(string); ok {
		fmt.Printf("  Tenant:    %s\n", tid)
	}
	if exp, ok := claims["exp"].(float64); ok {
		fmt.Printf("  Expires:   %s\n", time.Unix(int64(exp), 0).Format(time.RFC3339))
	}
	return nil
}

// setupSample provisions the resources the other samples need.
type setupSample struct{}

func (setupSample) Name() string { return "setup" }
func (setupSample) Description() string {
	return "Provision the resource group, vault, role assignment, and sample secret"
}

func (setupSample) Run(ctx context.Context, args []string) error {
	env := samples.LoadEnv()
	auth := AuthDefault
	tenant := env.TenantID
	subscription := env.SubscriptionID
	summaryPath := samples.DefaultSummaryPath()
	configPath := ""
	var overrides samples.SetupConfig

	for i := 0; i < len(args); i++ {
		var err error
		switch args[i] {
		case "--auth":
			auth, err = argValue(args, &i, "--auth")
		case "--tenant":
			tenant, err = argValue(args, &i, "--tenant")
		case "--subscription":
			subscription, err = argValue(args, &i, "--subscription")
		case "--config":
			configPath, err = argValue(args, &i, "--config")
		case "--resource-group":
			overrides.ResourceGroup, err = argValue(args, &i, "--resource-group")
		case "--location":
			overrides.Location, err = argValue(args, &i, "--location")
		case "--vault-name":
			overrides.VaultName, err = argValue(args, &i, "--vault-name")
		case "--secret-name":
			overrides.SecretName, err = argValue(args, &i, "--secret-name")
		case "--summary":
			summaryPath, err = argValue(args, &i, "--summary")
		default:
			err = samples.ErrInvalidConfig("unknown option: " + args[i])
		}
		if err != nil {
			return err
		}
	}

	if subscription == "" {
		return samples.ErrInvalidConfig(samples.EnvSubscriptionID + " is not set").
			WithDetail("hint", "export "+samples.EnvSubscriptionID+" or pass --subscription")
	}
	if tenant == "" {
		return samples.ErrInvalidConfig(samples.EnvTenantID + " is not set").
			WithDetail("hint", "export "+samples.EnvTenantID+" or pass --tenant")
	}

	cfg := samples.DefaultSetupConfig()
	if configPath != "" {
		var err error
		cfg, err = samples.LoadSetupConfig(configPath)
		if err != nil {
			return samples.ErrInvalidConfig("failed to load setup config").WithCause(err)
		}
	}
	if overrides.ResourceGroup != "" {
		cfg.ResourceGroup = overrides.ResourceGroup
	}
	if overrides.Location != "" {
		cfg.Location = overrides.Location
	}
	if overrides.VaultName != "" {
		cfg.VaultName = overrides.VaultName
	}
	if overrides.SecretName != "" {
		cfg.SecretName = overrides.SecretName
	}

	cred, err := NewCredential(CredentialOptions{Mode: auth, TenantID: tenant})
	if err != nil {
		return err
	}
	principalID, err := PrincipalObjectID(ctx, cred)
	if err != nil {
		return err
	}
	control, err := NewControlPlane(subscription, cred)
	if err != nil {
		return err
	}

	provisioner := NewProvisioner(
		WithControlPlane(control),
		WithSecretStoreFactory(func(vaultURL string) (SecretStore, error) {
			return NewSecretStore(vaultURL, cred)
		}),
		WithRunner(samples.NewRunner(cfg.Retry)),
	)

	summary, err := provisioner.Run(ctx, cfg, tenant, subscription, principalID)
	if err != nil {
		return err
	}

	if err := samples.WriteSummary(summaryPath, summary); err != nil {
		return err
	}

	fmt.Println("\n=== Setup Complete ===")
	fmt.Printf("Resource group: %s\n", summary.ResourceGroup)
	fmt.Printf("Vault:          %s\n", summary.VaultName)
	fmt.Printf("Vault URL:      %s\n", summary.VaultURL)
	fmt.Printf("Secret:         %s (written: %t)\n", summary.SecretName, summary.SecretWritten)
	fmt.Printf("Summary file:   %s\n", summaryPath)
	fmt.Println("\nNext steps:")
	fmt.Printf("  export %s=%s\n", samples.EnvVaultURL, summary.VaultURL)
	fmt.Println("  cloud-samples get-secret")
	if !summary.SecretWritten {
		fmt.Println("\nWarning: the sample secret was not written; the role grant may")
		fmt.Println("still be propagating. Re-run setup later or write it manually:")
		fmt.Printf("  az keyvault secret set --vault-name %s --name %s --value <value>\n",
			summary.VaultName, summary.SecretName)
	}
	return nil
}

func init() {
	// Register with the default registry. Errors only arise on name
	// collisions, which are programmer mistakes.
	if err := samples.Register(listGroupsSample{}); err != nil {
		panic(err)
	}
	if err := samples.Register(getSecretSample{}); err != nil {
		panic(err)
	}
	if err := samples.Register(loginSample{}); err != nil {
		panic(err)
	}
	if err := samples.Register(setupSample{}); err != nil {
		panic(err)
	}
}
