package persistence

import (
	"context"
	"errors"
	"sync"
	"time"
)

// UnitOfWork collects the write statements of one command and executes them in one transaction.
//
// Repositories call Register while the command mutates state. Commit runs everything registered
// so far and reports whether at least one row was affected. A UnitOfWork is single-use.
type UnitOfWork struct {
	db        *Database
	mu        sync.Mutex
	pending   []string
	completed bool
}

// Register renders stmt and queues it for the next Commit.
func (u *UnitOfWork) Register(stmt Statement) error {
	sqlQuery, err := render(stmt)
	if err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.completed {
		return ErrUnitOfWorkCompleted
	}

	u.pending = append(u.pending, sqlQuery)

	return nil
}

// Pending returns the number of statements waiting for Commit.
func (u *UnitOfWork) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return len(u.pending)
}

// Commit executes all pending statements atomically.
//
// It returns true if the statements affected at least one row, false if nothing was pending or
// nothing changed. Any storage error rolls the transaction back and is returned joined with
// ErrCommitFailed. A second Commit returns ErrUnitOfWorkCompleted.
func (u *UnitOfWork) Commit(ctx context.Context) (bool, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.completed {
		return false, ErrUnitOfWorkCompleted
	}

	u.completed = true
	statements := u.pending
	u.pending = nil

	if len(statements) == 0 {
		u.db.logInfo(ctx, logMsgNothingToCommit)
		return false, nil
	}

	start := time.Now()

	rowsAffected, err := u.execute(ctx, statements)
	if err != nil {
		return false, errors.Join(ErrCommitFailed, err)
	}

	u.db.logInfo(
		ctx,
		logMsgCommitted,
		logAttrStatementCount, len(statements),
		logAttrRowsAffected, rowsAffected,
		logAttrDurationMS, toMilliseconds(time.Since(start)),
	)

	return rowsAffected > 0, nil
}

func (u *UnitOfWork) execute(ctx context.Context, statements []string) (int64, error) {
	tx, err := u.db.db.Begin(ctx)
	if err != nil {
		u.db.logError(ctx, logMsgBeginFailed, err)
		return 0, err
	}

	var total int64

	for _, sqlQuery := range statements {
		start := time.Now()
		result, execErr := tx.Exec(ctx, sqlQuery)
		u.db.logQueryWithDuration(ctx, sqlQuery, logActionCommit, time.Since(start))

		if execErr != nil {
			u.db.logError(ctx, logMsgExecFailed, execErr, logAttrQuery, sqlQuery)
			u.rollback(ctx, tx)

			return 0, execErr
		}

		affected, affectedErr := result.RowsAffected()
		if affectedErr != nil {
			u.rollback(ctx, tx)
			return 0, affectedErr
		}

		total += affected
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		u.db.logError(ctx, logMsgCommitFailed, commitErr)
		return 0, commitErr
	}

	return total, nil
}

func (u *UnitOfWork) rollback(ctx context.Context, tx interface{ Rollback(context.Context) error }) {
	if err := tx.Rollback(ctx); err != nil {
		u.db.logWarn(ctx, logMsgRollbackFailed, err)
	}
}
