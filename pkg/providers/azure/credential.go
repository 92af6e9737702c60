// Package azure provides the Azure-focused console samples: resource
// group listing, Key Vault secret retrieval, interactive sign-in, and
// provisioning of the sample resources.
package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/golang-jwt/jwt/v5"

	"github.com/anirudhbiyani/cloud-samples/pkg/samples"
)

// ARMScope is the token scope for the resource-management plane.
const ARMScope = "https://management.azure.com/.default"

// Credential modes accepted by the samples' --auth flag.
const (
	// AuthDefault walks the default credential chain (environment,
	// managed identity, developer tools).
	AuthDefault = "default"
	// AuthInteractive opens a browser (via the OS broker where one is
	// available) for interactive sign-in.
	AuthInteractive = "interactive"
	// AuthDeviceCode prints a device code for environments without a
	// usable browser.
	AuthDeviceCode = "device-code"
)

// CredentialOptions selects how a sample authenticates.
type CredentialOptions struct {
	// Mode is one of AuthDefault, AuthInteractive, AuthDeviceCode.
	Mode string

	// TenantID pins interactive flows to a tenant. Optional.
	TenantID string
}

// NewCredential constructs a token credential for the requested mode.
func NewCredential(opts CredentialOptions) (azcore.TokenCredential, error) {
	switch opts.Mode {
	case "", AuthDefault:
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, samples.ErrAuth("failed to construct default credential").WithCause(err)
		}
		return cred, nil
	case AuthInteractive:
		cred, err := azidentity.NewInteractiveBrowserCredential(&azidentity.InteractiveBrowserCredentialOptions{
			TenantID: opts.TenantID,
		})
		if err != nil {
			return nil, samples.ErrAuth("failed to construct interactive browser credential").WithCause(err)
		}
		return cred, nil
	case AuthDeviceCode:
		cred, err := azidentity.NewDeviceCodeCredential(&azidentity.DeviceCodeCredentialOptions{
			TenantID: opts.TenantID,
		})
		if err != nil {
			return nil, samples.ErrAuth("failed to construct device code credential").WithCause(err)
		}
		return cred, nil
	default:
		return nil, samples.ErrInvalidConfig(fmt.Sprintf("unknown auth mode: %q", opts.Mode)).
			WithDetail("hint", "valid modes: default, interactive, device-code")
	}
}

// TokenClaims acquires a token for scope and returns its claims without
// signature verification. The token was just issued to us over TLS;
// the claims are inspected for display and principal resolution only.
func TokenClaims(ctx context.Context, cred azcore.TokenCredential, scope string) (jwt.MapClaims, error) {
	tok, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scope}})
	if err != nil {
		return nil, samples.ErrAuth("token acquisition failed").WithCause(err)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.Token, claims); err != nil {
		return nil, samples.ErrInternal("failed to parse access token").WithCause(err)
	}
	return claims, nil
}

// PrincipalObjectID resolves the object ID of the signed-in principal
// from an ARM token, the way the provisioning flow needs it for role
// assignment.
func PrincipalObjectID(ctx context.Context, cred azcore.TokenCredential) (string, error) {
	claims, err := TokenClaims(ctx, cred, ARMScope)
	if err != nil {
		return "", err
	}
	oid, ok := claims["oid"].(string)
	if !ok || oid == "" {
		return "", samples.ErrAuth("access token carries no object ID claim")
	}
	return oid, nil
}
