package repository

import "context"

// OrganizationRepository is the read-only view of the organization directory.
type OrganizationRepository interface {
	// ListAccountIDs pages through every account of the organization.
	ListAccountIDs(ctx context.Context) ([]string, error)
	// GetManagementAccountID returns the organization's management account.
	GetManagementAccountID(ctx context.Context) (string, error)
}
