package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
)

// RoleSessionName identifies the reader session in CloudTrail.
const RoleSessionName = "sustainability_reader_session"

// AssumeRoleAPI is the subset of the STS client used to assume roles.
type AssumeRoleAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// CallerIdentityAPI is the subset of the STS client used to resolve identities.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// STSRepositoryImpl implementa CredentialBroker e IdentityResolver.
type STSRepositoryImpl struct {
	client   AssumeRoleAPI
	identity func(creds entity.Credentials) CallerIdentityAPI
}

// NewSTSRepository creates a broker that assumes roles with client. Identity
// lookups use a fresh STS client bound to the credentials being inspected.
func NewSTSRepository(client AssumeRoleAPI) *STSRepositoryImpl {
	return &STSRepositoryImpl{
		client: client,
		identity: func(creds entity.Credentials) CallerIdentityAPI {
			return sts.NewFromConfig(configForCredentials(creds))
		},
	}
}

// WithIdentityClient overrides how identity clients are built.
func (r *STSRepositoryImpl) WithIdentityClient(fn func(creds entity.Credentials) CallerIdentityAPI) *STSRepositoryImpl {
	r.identity = fn
	return r
}

// RoleARN builds the ARN of roleName in accountID.
func RoleARN(accountID, roleName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, roleName)
}

// Assume exchanges the base credentials for the role in accountID.
func (r *STSRepositoryImpl) Assume(ctx context.Context, accountID, roleName string) (entity.Credentials, error) {
	roleARN := RoleARN(accountID, roleName)
	out, err := r.client.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(RoleSessionName),
	})
	if err != nil {
		return entity.Credentials{}, &types.AssumeRoleError{AccountID: accountID, RoleARN: roleARN, Err: apiError(err)}
	}
	if out.Credentials == nil {
		return entity.Credentials{}, &types.AssumeRoleError{AccountID: accountID, RoleARN: roleARN, Err: errors.New("empty credentials in response")}
	}

	creds := entity.Credentials{
		AccessKeyID:     aws.ToString(out.Credentials.AccessKeyId),
		SecretAccessKey: aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken:    aws.ToString(out.Credentials.SessionToken),
	}
	if out.Credentials.Expiration != nil {
		creds.Expires = *out.Credentials.Expiration
	}
	return creds, nil
}

// CallerAccountID returns the account that owns creds.
func (r *STSRepositoryImpl) CallerAccountID(ctx context.Context, creds entity.Credentials) (string, error) {
	out, err := r.identity(creds).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity: %w", apiError(err))
	}
	return aws.ToString(out.Account), nil
}

// apiError reduces SDK errors to "Code: message" while keeping the chain.
func apiError(err error) error {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return fmt.Errorf("%s: %s: %w", ae.ErrorCode(), ae.ErrorMessage(), err)
	}
	return err
}
