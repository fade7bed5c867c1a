package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/entity"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountEnumerator_ManagementFirst(t *testing.T) {
	tests := []struct {
		name       string
		management string
		ids        []string
		want       []string
	}{
		{name: "management in the middle", management: "999", ids: []string{"111", "999", "222"}, want: []string{"999", "111", "222"}},
		{name: "management already first", management: "999", ids: []string{"999", "111"}, want: []string{"999", "111"}},
		{name: "management not listed", management: "999", ids: []string{"111", "222"}, want: []string{"999", "111", "222"}},
		{name: "duplicates dropped", management: "999", ids: []string{"111", "111", "999"}, want: []string{"999", "111"}},
		{name: "only management", management: "999", ids: nil, want: []string{"999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockOrgRepo{}
			repo.On("GetManagementAccountID", mock.Anything).Return(tt.management, nil)
			repo.On("ListAccountIDs", mock.Anything).Return(tt.ids, nil)

			accounts, err := NewAccountEnumerator(repo).List(context.Background(), nil)

			require.NoError(t, err)
			assert.Equal(t, tt.want, entity.AccountIDs(accounts))
			assert.True(t, accounts[0].IsManagement())
			for _, a := range accounts[1:] {
				assert.False(t, a.IsManagement())
			}
		})
	}
}

func TestAccountEnumerator_Override(t *testing.T) {
	repo := &mockOrgRepo{}

	accounts, err := NewAccountEnumerator(repo).List(context.Background(), []string{"333", "111", "333"})

	require.NoError(t, err)
	assert.Equal(t, []string{"333", "111"}, entity.AccountIDs(accounts))
	repo.AssertNotCalled(t, "ListAccountIDs", mock.Anything)
	repo.AssertNotCalled(t, "GetManagementAccountID", mock.Anything)
}

func TestAccountEnumerator_Errors(t *testing.T) {
	t.Run("organization error", func(t *testing.T) {
		repo := &mockOrgRepo{}
		repo.On("GetManagementAccountID", mock.Anything).Return("", errors.New("AWSOrganizationsNotInUseException"))

		_, err := NewAccountEnumerator(repo).List(context.Background(), nil)

		assert.ErrorContains(t, err, "AWSOrganizationsNotInUseException")
	})

	t.Run("empty organization", func(t *testing.T) {
		repo := &mockOrgRepo{}
		repo.On("GetManagementAccountID", mock.Anything).Return("", nil)
		repo.On("ListAccountIDs", mock.Anything).Return([]string{}, nil)

		_, err := NewAccountEnumerator(repo).List(context.Background(), nil)

		assert.ErrorIs(t, err, types.ErrNoAccountsFound)
	})
}
