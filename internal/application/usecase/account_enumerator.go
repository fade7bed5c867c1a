package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
)

// AccountEnumerator lists the organization's accounts, management account first.
type AccountEnumerator struct {
	orgRepo repository.OrganizationRepository
}

// NewAccountEnumerator creates a new account enumerator.
func NewAccountEnumerator(orgRepo repository.OrganizationRepository) *AccountEnumerator {
	return &AccountEnumerator{orgRepo: orgRepo}
}

// List returns the accounts to process. A non-empty override bypasses the
// organization directory entirely and is returned in the given order.
func (e *AccountEnumerator) List(ctx context.Context, override []string) ([]entity.Account, error) {
	if len(override) > 0 {
		accounts := make([]entity.Account, 0, len(override))
		for _, id := range dedupe(override) {
			accounts = append(accounts, entity.Account{ID: id, Role: entity.AccountRoleMember})
		}
		return accounts, nil
	}

	managementID, err := e.orgRepo.GetManagementAccountID(ctx)
	if err != nil {
		return nil, fmt.Errorf("error describing organization: %w", err)
	}

	ids, err := e.orgRepo.ListAccountIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing organization accounts: %w", err)
	}
	if len(ids) == 0 && managementID == "" {
		return nil, types.ErrNoAccountsFound
	}

	return OrderAccounts(managementID, ids), nil
}

// OrderAccounts moves managementID to index 0 and drops duplicates.
func OrderAccounts(managementID string, ids []string) []entity.Account {
	accounts := make([]entity.Account, 0, len(ids)+1)
	if managementID != "" {
		accounts = append(accounts, entity.Account{ID: managementID, Role: entity.AccountRoleManagement})
	}
	for _, id := range dedupe(ids) {
		if id == managementID {
			continue
		}
		accounts = append(accounts, entity.Account{ID: id, Role: entity.AccountRoleMember})
	}
	return accounts
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
