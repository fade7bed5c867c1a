package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
)

// OrganizationsAPI is the subset of the organizations client in use.
type OrganizationsAPI interface {
	organizations.ListAccountsAPIClient
	DescribeOrganization(ctx context.Context, params *organizations.DescribeOrganizationInput, optFns ...func(*organizations.Options)) (*organizations.DescribeOrganizationOutput, error)
}

// OrganizationRepositoryImpl implementa repository.OrganizationRepository.
type OrganizationRepositoryImpl struct {
	client OrganizationsAPI
}

// NewOrganizationRepository creates a repository over client.
func NewOrganizationRepository(client OrganizationsAPI) *OrganizationRepositoryImpl {
	return &OrganizationRepositoryImpl{client: client}
}

// ListAccountIDs pages through all accounts of the organization.
func (r *OrganizationRepositoryImpl) ListAccountIDs(ctx context.Context) ([]string, error) {
	var ids []string
	paginator := organizations.NewListAccountsPaginator(r.client, &organizations.ListAccountsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing organization accounts: %w", err)
		}
		for _, account := range page.Accounts {
			ids = append(ids, aws.ToString(account.Id))
		}
	}
	return ids, nil
}

// GetManagementAccountID returns the organization's management account.
func (r *OrganizationRepositoryImpl) GetManagementAccountID(ctx context.Context) (string, error) {
	out, err := r.client.DescribeOrganization(ctx, &organizations.DescribeOrganizationInput{})
	if err != nil {
		return "", fmt.Errorf("error describing organization: %w", err)
	}
	if out.Organization == nil {
		return "", nil
	}
	return aws.ToString(out.Organization.MasterAccountId), nil
}
