// Package aws provides the AWS console sample: IAM role listing. It is
// the second-provider counterpart of the Azure resource listing and
// shows the outcome classifier is not tied to one SDK's error types.
package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"

	"github.com/anirudhbiyani/cloud-samples/pkg/samples"
)

// RoleInfo describes one IAM role in a listing.
type RoleInfo struct {
	Name string
	ARN  string
}

// RoleLister abstracts the IAM listing operation.
type RoleLister interface {
	ListRoles(ctx context.Context) ([]RoleInfo, error)
}

// iamRoleLister implements RoleLister with the IAM client.
type iamRoleLister struct {
	client *iam.Client
}

// NewRoleLister builds a RoleLister from the default AWS configuration
// chain (environment, shared config, instance metadata).
func NewRoleLister(ctx context.Context) (RoleLister, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, samples.ErrAuth("failed to load AWS configuration").WithCause(err)
	}
	return &iamRoleLister{client: iam.NewFromConfig(cfg)}, nil
}

// ListRoles implements RoleLister.
func (l *iamRoleLister) ListRoles(ctx context.Context) ([]RoleInfo, error) {
	var roles []RoleInfo
	paginator := iam.NewListRolesPaginator(l.client, &iam.ListRolesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list IAM roles: %w", err)
		}
		for _, r := range page.Roles {
			info := RoleInfo{}
			if r.RoleName != nil {
				info.Name = *r.RoleName
			}
			if r.Arn != nil {
				info.ARN = *r.Arn
			}
			roles = append(roles, info)
		}
	}
	return roles, nil
}

// FormatRoles renders a role listing for console output.
func FormatRoles(roles []RoleInfo) string {
	if len(roles) == 0 {
		return "No IAM roles found.\n"
	}
	var b strings.Builder
	b.WriteString("IAM roles:\n")
	for _, r := range roles {
		fmt.Fprintf(&b, "  %-40s %s\n", r.Name, r.ARN)
	}
	return b.String()
}

// listRolesSample lists IAM roles in the account.
type listRolesSample struct{}

func (listRolesSample) Name() string { return "list-roles" }
func (listRolesSample) Description() string {
	return "List IAM roles via the AWS SDK"
}

func (listRolesSample) Run(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return samples.ErrInvalidConfig("unknown option: " + args[0])
	}

	lister, err := NewRoleLister(ctx)
	if err != nil {
		return err
	}
	roles, err := lister.ListRoles(ctx)
	if err != nil {
		return err
	}

	fmt.Print(FormatRoles(roles))
	return nil
}

func init() {
	if err := samples.Register(listRolesSample{}); err != nil {
		panic(err)
	}
}
