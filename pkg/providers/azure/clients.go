package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/authorization/armauthorization/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/keyvault/armkeyvault"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/google/uuid"

	"github.com/anirudhbiyani/cloud-samples/pkg/samples"
)

// secretsOfficerRoleID is the built-in Key Vault Secrets Officer role
// definition ID, the minimum role allowing secret reads and writes on
// an RBAC-mode vault.
const secretsOfficerRoleID = "b86a8fe4-44ce-4948-aee5-eccb2c155cd7"

// GroupInfo describes one resource group in a listing.
type GroupInfo struct {
	Name     string
	Location string
}

// VaultInfo identifies a provisioned vault.
type VaultInfo struct {
	// ID is the ARM resource ID, used as the role-assignment scope.
	ID string

	// URI is the data-plane endpoint.
	URI string
}

// ControlPlane abstracts the resource-management operations the samples
// need. All operations are idempotent: creates are create-or-update and
// an already-existing role assignment is success.
type ControlPlane interface {
	// ListGroups returns all resource groups in the subscription.
	ListGroups(ctx context.Context) ([]GroupInfo, error)

	// EnsureResourceGroup creates or updates a resource group.
	EnsureResourceGroup(ctx context.Context, name, location string) error

	// EnsureVault creates or updates an RBAC-mode Key Vault and
	// returns its identifiers.
	EnsureVault(ctx context.Context, group, name, location, tenantID string) (*VaultInfo, error)

	// AssignSecretsOfficer grants the Key Vault Secrets Officer role
	// to principalID over scope.
	AssignSecretsOfficer(ctx context.Context, scope, principalID string) error
}

// SecretStore abstracts the data-plane secret operations.
type SecretStore interface {
	// SetSecret writes a secret value.
	SetSecret(ctx context.Context, name, value string) error

	// GetSecret reads the latest version of a secret.
	GetSecret(ctx context.Context, name string) (string, error)
}

// armControlPlane implements ControlPlane with the resource-management
// SDK clients.
type armControlPlane struct {
	subscriptionID string
	groups         *armresources.ResourceGroupsClient
	vaults         *armkeyvault.VaultsClient
	assignments    *armauthorization.RoleAssignmentsClient
}

// NewControlPlane builds a ControlPlane backed by the real management
// clients.
func NewControlPlane(subscriptionID string, cred azcore.TokenCredential) (ControlPlane, error) {
	groups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create resource groups client: %w", err)
	}
	vaults, err := armkeyvault.NewVaultsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create vaults client: %w", err)
	}
	assignments, err := armauthorization.NewRoleAssignmentsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create role assignments client: %w", err)
	}
	return &armControlPlane{
		subscriptionID: subscriptionID,
		groups:         groups,
		vaults:         vaults,
		assignments:    assignments,
	}, nil
}

// ListGroups implements ControlPlane.
func (c *armControlPlane) ListGroups(ctx context.Context) ([]GroupInfo, error) {
	var groups []GroupInfo
	pager := c.groups.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list resource groups: %w", err)
		}
		for _, g := range page.Value {
			info := GroupInfo{}
			if g.Name != nil {
				info.Name = *g.Name
			}
			if g.Location != nil {
				info.Location = *g.Location
			}
			groups = append(groups, info)
		}
	}
	return groups, nil
}

// EnsureResourceGroup implements ControlPlane.
func (c *armControlPlane) EnsureResourceGroup(ctx context.Context, name, location string) error {
	_, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
	}, nil)
	if err != nil {
		return fmt.Errorf("create resource group %s: %w", name, err)
	}
	return nil
}

// EnsureVault implements ControlPlane.
func (c *armControlPlane) EnsureVault(ctx context.Context, group, name, location, tenantID string) (*VaultInfo, error) {
	poller, err := c.vaults.BeginCreateOrUpdate(ctx, group, name, armkeyvault.VaultCreateOrUpdateParameters{
		Location: to.Ptr(location),
		Properties: &armkeyvault.VaultProperties{
			TenantID: to.Ptr(tenantID),
			SKU: &armkeyvault.SKU{
				Family: to.Ptr(armkeyvault.SKUFamilyA),
				Name:   to.Ptr(armkeyvault.SKUNameStandard),
			},
			// Access is governed by role assignments, not access
			// policies; the Secrets Officer grant below depends on it.
			EnableRbacAuthorization: to.Ptr(true),
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("create vault %s: %w", name, err)
	}

	res, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create vault %s: %w", name, err)
	}

	info := &VaultInfo{}
	if res.ID != nil {
		info.ID = *res.ID
	}
	if res.Properties != nil && res.Properties.VaultURI != nil {
		info.URI = *res.Properties.VaultURI
	}
	if info.URI == "" {
		return nil, samples.ErrInternal("vault was created but reported no URI")
	}
	return info, nil
}

// AssignSecretsOfficer implements ControlPlane. The assignment name
// must be a GUID; a 409 means the grant already exists and is treated
// as success.
func (c *armControlPlane) AssignSecretsOfficer(ctx context.Context, scope, principalID string) error {
	roleDefinitionID := fmt.Sprintf(
		"/subscriptions/%s/providers/Microsoft.Authorization/roleDefinitions/%s",
		c.subscriptionID, secretsOfficerRoleID)

	_, err := c.assignments.Create(ctx, scope, uuid.NewString(), armauthorization.RoleAssignmentCreateParameters{
		Properties: &armauthorization.RoleAssignmentProperties{
			PrincipalID:      to.Ptr(principalID),
			RoleDefinitionID: to.Ptr(roleDefinitionID),
		},
	}, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusConflict {
			return nil
		}
		return fmt.Errorf("assign secrets officer role: %w", err)
	}
	return nil
}

// vaultSecrets implements SecretStore with the Key Vault secrets client.
type vaultSecrets struct {
	client *azsecrets.Client
}

// NewSecretStore builds a SecretStore for the given vault endpoint.
func NewSecretStore(vaultURL string, cred azcore.TokenCredential) (SecretStore, error) {
	client, err := azsecrets.NewClient(vaultURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create secrets client: %w", err)
	}
	return &vaultSecrets{client: client}, nil
}

// SetSecret implements SecretStore.
func (s *vaultSecrets) SetSecret(ctx context.Context, name, value string) error {
	_, err := s.client.SetSecret(ctx, name, azsecrets.SetSecretParameters{
		Value: to.Ptr(value),
	}, nil)
	if err != nil {
		return fmt.Errorf("set secret %s: %w", name, err)
	}
	return nil
}

// GetSecret implements SecretStore.
func (s *vaultSecrets) GetSecret(ctx context.Context, name string) (string, error) {
	resp, err := s.client.GetSecret(ctx, name, "", nil)
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", name, err)
	}
	if resp.Value == nil {
		return "", samples.ErrInternal(fmt.Sprintf("secret %s has no value", name))
	}
	return *resp.Value, nil
}
