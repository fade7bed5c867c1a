package repository

import (
	"context"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
)

// CredentialBroker exchanges an account and role for temporary credentials.
// Implementations neither retry nor cache.
type CredentialBroker interface {
	Assume(ctx context.Context, accountID, roleName string) (entity.Credentials, error)
}

// IdentityResolver resolves which account a set of credentials belongs to.
type IdentityResolver interface {
	CallerAccountID(ctx context.Context, creds entity.Credentials) (string, error)
}
