package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/command-mediator-go/persistence"
	"github.com/AntonStoeckl/command-mediator-go/testutil/helper"
)

func insertResource(db *persistence.Database, id, name string) persistence.Statement {
	return db.Builder().
		Insert(persistence.TableIdentityResources).
		Rows(goqu.Record{"id": id, "name": name, "created_at": time.Now().UTC()})
}

func Test_UnitOfWork_Commit_PersistsAllStatements(t *testing.T) {
	// arrange
	ctx := context.Background()
	db, sqlDB := helper.GivenDatabase(t)
	uow := db.NewUnitOfWork()

	require.NoError(t, uow.Register(insertResource(db, "1", "openid")))
	require.NoError(t, uow.Register(insertResource(db, "2", "profile")))

	// act
	committed, err := uow.Commit(ctx)

	// assert
	require.NoError(t, err)
	assert.True(t, committed)
	assert.Equal(t, 2, helper.CountRows(t, sqlDB, persistence.TableIdentityResources))
	assert.Zero(t, uow.Pending())
}

func Test_UnitOfWork_Commit_NothingPending(t *testing.T) {
	db, _ := helper.GivenDatabase(t)

	committed, err := db.NewUnitOfWork().Commit(context.Background())

	require.NoError(t, err)
	assert.False(t, committed)
}

func Test_UnitOfWork_Commit_NoRowsAffected(t *testing.T) {
	// arrange
	db, _ := helper.GivenDatabase(t)
	uow := db.NewUnitOfWork()
	require.NoError(t, uow.Register(
		db.Builder().Delete(persistence.TableIdentityResources).Where(goqu.C("name").Eq("missing")),
	))

	// act
	committed, err := uow.Commit(context.Background())

	// assert
	require.NoError(t, err)
	assert.False(t, committed)
}

func Test_UnitOfWork_Commit_RollsBackOnFailure(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy(false)
	db, sqlDB := helper.GivenDatabase(t, persistence.WithLogger(logSpy.Logger()))
	uow := db.NewUnitOfWork()

	require.NoError(t, uow.Register(insertResource(db, "1", "openid")))
	require.NoError(t, uow.Register(insertResource(db, "2", "openid"))) // unique name violation

	// act
	committed, err := uow.Commit(context.Background())

	// assert
	assert.False(t, committed)
	assert.ErrorIs(t, err, persistence.ErrCommitFailed)
	assert.Zero(t, helper.CountRows(t, sqlDB, persistence.TableIdentityResources))
	assert.True(t, logSpy.HasErrorLogWithMessage("statement execution failed during commit").Assert())
}

func Test_UnitOfWork_IsSingleUse(t *testing.T) {
	// arrange
	db, _ := helper.GivenDatabase(t)
	uow := db.NewUnitOfWork()
	require.NoError(t, uow.Register(insertResource(db, "1", "openid")))
	_, err := uow.Commit(context.Background())
	require.NoError(t, err)

	// act
	_, secondCommitErr := uow.Commit(context.Background())
	registerErr := uow.Register(insertResource(db, "2", "profile"))

	// assert
	assert.ErrorIs(t, secondCommitErr, persistence.ErrUnitOfWorkCompleted)
	assert.ErrorIs(t, registerErr, persistence.ErrUnitOfWorkCompleted)
}

func Test_UnitOfWork_Commit_LogsSQL(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy(false)
	db, _ := helper.GivenDatabase(t, persistence.WithLogger(logSpy.Logger()))
	uow := db.NewUnitOfWork()
	require.NoError(t, uow.Register(insertResource(db, "1", "openid")))

	// act
	_, err := uow.Commit(context.Background())

	// assert
	require.NoError(t, err)
	assert.True(t, logSpy.HasDebugLogWithMessage("executed sql for: commit").WithDurationMS().Assert())
	assert.True(t, logSpy.HasInfoLogWithMessage("unit of work committed").WithAttr("rows_affected", "1").Assert())
}
