package persistedgrant_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/command-mediator-go/admin/persistedgrant"
	"github.com/AntonStoeckl/command-mediator-go/mediator"
	"github.com/AntonStoeckl/command-mediator-go/persistence"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type repositoryMock struct {
	mock.Mock
}

func (m *repositoryMock) GetByKey(ctx context.Context, key string) (*persistedgrant.PersistedGrant, error) {
	args := m.Called(ctx, key)
	grant, _ := args.Get(0).(*persistedgrant.PersistedGrant)
	return grant, args.Error(1)
}

func (m *repositoryMock) Search(ctx context.Context, search persistedgrant.Search) ([]persistedgrant.PersistedGrant, error) {
	args := m.Called(ctx, search)
	grants, _ := args.Get(0).([]persistedgrant.PersistedGrant)
	return grants, args.Error(1)
}

func (m *repositoryMock) Count(ctx context.Context, search persistedgrant.Search) (int, error) {
	args := m.Called(ctx, search)
	return args.Int(0), args.Error(1)
}

func (m *repositoryMock) Remove(ctx context.Context, grant persistedgrant.PersistedGrant) error {
	return m.Called(ctx, grant).Error(0)
}

type unitOfWorkMock struct {
	mock.Mock
}

func (m *unitOfWorkMock) Commit(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type commandSenderMock struct {
	mock.Mock
}

func (m *commandSenderMock) SendCommand(ctx context.Context, command mediator.Command) (bool, error) {
	args := m.Called(ctx, command)
	return args.Bool(0), args.Error(1)
}

func givenGrant(key string, clientID string, subjectID string, createdAt time.Time) persistedgrant.PersistedGrant {
	return persistedgrant.PersistedGrant{
		Key:          key,
		Type:         "refresh_token",
		SubjectID:    subjectID,
		ClientID:     clientID,
		CreationTime: createdAt,
		Data:         fmt.Sprintf(`{"client":%q}`, clientID),
	}
}

func givenStoredGrants(t *testing.T, db *persistence.Database, grants ...persistedgrant.PersistedGrant) {
	t.Helper()

	uow := db.NewUnitOfWork()
	repository, err := persistedgrant.NewSQLRepository(db, uow)
	require.NoError(t, err, "error in arranging test data")

	for _, grant := range grants {
		require.NoError(t, repository.Add(context.Background(), grant), "error in arranging test data")
	}

	_, err = uow.Commit(context.Background())
	require.NoError(t, err, "error in arranging test data")
}
