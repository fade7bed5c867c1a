package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/organizations"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"
)

type mockOrganizations struct{ mock.Mock }

func (m *mockOrganizations) ListAccounts(ctx context.Context, params *organizations.ListAccountsInput, _ ...func(*organizations.Options)) (*organizations.ListAccountsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*organizations.ListAccountsOutput)
	return out, args.Error(1)
}

func (m *mockOrganizations) DescribeOrganization(ctx context.Context, params *organizations.DescribeOrganizationInput, _ ...func(*organizations.Options)) (*organizations.DescribeOrganizationOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*organizations.DescribeOrganizationOutput)
	return out, args.Error(1)
}

type mockSTS struct{ mock.Mock }

func (m *mockSTS) AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, _ ...func(*sts.Options)) (*sts.AssumeRoleOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sts.AssumeRoleOutput)
	return out, args.Error(1)
}

func (m *mockSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sts.GetCallerIdentityOutput)
	return out, args.Error(1)
}

type mockS3 struct{ mock.Mock }

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

type mockAthena struct{ mock.Mock }

func (m *mockAthena) StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, _ ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*athena.StartQueryExecutionOutput)
	return out, args.Error(1)
}

func (m *mockAthena) GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, _ ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*athena.GetQueryExecutionOutput)
	return out, args.Error(1)
}

type mockLambda struct{ mock.Mock }

func (m *mockLambda) Invoke(ctx context.Context, params *lambda.InvokeInput, _ ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*lambda.InvokeOutput)
	return out, args.Error(1)
}
