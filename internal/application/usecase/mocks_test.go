package usecase

import (
	"context"
	"io"
	"sync"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/diillson/aws-carbon-emissions-go/pkg/console"
	"github.com/stretchr/testify/mock"
)

func quietConsole() types.ConsoleInterface {
	return console.NewStructuredConsole(io.Discard, "text", true)
}

type mockOrgRepo struct{ mock.Mock }

func (m *mockOrgRepo) ListAccountIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *mockOrgRepo) GetManagementAccountID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockBroker struct{ mock.Mock }

func (m *mockBroker) Assume(ctx context.Context, accountID, roleName string) (entity.Credentials, error) {
	args := m.Called(ctx, accountID, roleName)
	creds, _ := args.Get(0).(entity.Credentials)
	return creds, args.Error(1)
}

type mockIdentity struct{ mock.Mock }

func (m *mockIdentity) CallerAccountID(ctx context.Context, creds entity.Credentials) (string, error) {
	args := m.Called(ctx, creds)
	return args.String(0), args.Error(1)
}

type mockStrategy struct{ mock.Mock }

func (m *mockStrategy) Name() string { return "mock" }

func (m *mockStrategy) Fetch(ctx context.Context, creds entity.Credentials, tf entity.Timeframe) (*entity.RawResponse, error) {
	args := m.Called(ctx, creds, tf)
	resp, _ := args.Get(0).(*entity.RawResponse)
	return resp, args.Error(1)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	return m.Called(ctx, bucket, key, body).Error(0)
}

type mockIndex struct{ mock.Mock }

func (m *mockIndex) IsEmpty(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

type mockEngine struct{ mock.Mock }

func (m *mockEngine) StartQuery(ctx context.Context, query, workgroup string) (string, error) {
	args := m.Called(ctx, query, workgroup)
	return args.String(0), args.Error(1)
}

func (m *mockEngine) GetQueryExecution(ctx context.Context, executionID string) (entity.QueryExecution, error) {
	args := m.Called(ctx, executionID)
	execution, _ := args.Get(0).(entity.QueryExecution)
	return execution, args.Error(1)
}

type mockInvoker struct{ mock.Mock }

func (m *mockInvoker) InvokeExtraction(ctx context.Context, functionName string, event entity.ExtractionEvent) (entity.ExtractionResult, error) {
	args := m.Called(ctx, functionName, event)
	result, _ := args.Get(0).(entity.ExtractionResult)
	return result, args.Error(1)
}

// memoryStore keeps written objects in memory.
type memoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStore() *memoryStore { return &memoryStore{objects: map[string][]byte{}} }

func (s *memoryStore) PutObject(_ context.Context, bucket, key string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = body
	return nil
}

func (s *memoryStore) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

// recordingRecorder collects outcomes.
type recordingRecorder struct {
	mu       sync.Mutex
	outcomes []entity.AccountOutcome
}

func (r *recordingRecorder) ObserveOutcome(o entity.AccountOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func mustTimeframe(start, end string) entity.Timeframe {
	tf, err := entity.NewTimeframe(start, end)
	if err != nil {
		panic(err)
	}
	return tf
}

var sessionCreds = entity.Credentials{AccessKeyID: "ASIA", SecretAccessKey: "secret", SessionToken: "token"}
