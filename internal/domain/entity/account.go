package entity

// AccountRole distinguishes the organization's management account from its members.
type AccountRole string

const (
	AccountRoleManagement AccountRole = "management"
	AccountRoleMember     AccountRole = "member"
)

// Account is an organization account as enumerated for processing.
type Account struct {
	ID   string      `json:"id"`
	Role AccountRole `json:"role"`
}

// IsManagement reports whether the account is the organization's management account.
func (a Account) IsManagement() bool {
	return a.Role == AccountRoleManagement
}

// AccountIDs returns the identifiers of accounts, keeping their order.
func AccountIDs(accounts []Account) []string {
	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}
	return ids
}
