package persistedgrant

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/command-mediator-go/persistence"
)

const (
	colKey          = "grant_key"
	colType         = "type"
	colSubjectID    = "subject_id"
	colClientID     = "client_id"
	colCreationTime = "creation_time"
	colExpiration   = "expiration"
	colData         = "data"
)

// SQLRepository reads persisted grants directly and registers changes on a persistence.UnitOfWork.
type SQLRepository struct {
	db  *persistence.Database
	uow *persistence.UnitOfWork
}

// NewSQLRepository creates a SQLRepository whose changes are committed by uow.
func NewSQLRepository(db *persistence.Database, uow *persistence.UnitOfWork) (*SQLRepository, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	if uow == nil {
		return nil, ErrNilUnitOfWork
	}

	return &SQLRepository{db: db, uow: uow}, nil
}

func (r *SQLRepository) selectGrants() *goqu.SelectDataset {
	return r.db.Builder().
		From(persistence.TablePersistedGrants).
		Select(colKey, colType, colSubjectID, colClientID, colCreationTime, colExpiration, colData)
}

func matching(ds *goqu.SelectDataset, search Search) *goqu.SelectDataset {
	if search.Text == "" {
		return ds
	}

	return ds.Where(goqu.Or(
		goqu.C(colSubjectID).Eq(search.Text),
		goqu.C(colClientID).Eq(search.Text),
	))
}

// GetByKey returns the grant with the given key, or nil.
func (r *SQLRepository) GetByKey(ctx context.Context, key string) (*PersistedGrant, error) {
	grants, err := r.query(ctx, r.selectGrants().Where(goqu.C(colKey).Eq(key)).Limit(1))
	if err != nil || len(grants) == 0 {
		return nil, err
	}

	return &grants[0], nil
}

// Search returns one page of grants matching search, newest first.
func (r *SQLRepository) Search(ctx context.Context, search Search) ([]PersistedGrant, error) {
	search = search.normalized()

	stmt := matching(r.selectGrants(), search).
		Order(goqu.C(colCreationTime).Desc(), goqu.C(colKey).Asc()).
		Limit(search.Limit).
		Offset(search.Offset)

	return r.query(ctx, stmt)
}

// Count returns the number of grants matching search, ignoring paging.
func (r *SQLRepository) Count(ctx context.Context, search Search) (int, error) {
	stmt := matching(
		r.db.Builder().From(persistence.TablePersistedGrants).Select(goqu.COUNT(goqu.Star())),
		search,
	)

	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return 0, errors.Join(ErrLoadingGrantFailed, err)
	}
	defer r.db.CloseRows(ctx, rows)

	var count int
	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			return 0, errors.Join(ErrLoadingGrantFailed, scanErr)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return 0, errors.Join(ErrLoadingGrantFailed, rowsErr)
	}

	return count, nil
}

func (r *SQLRepository) query(ctx context.Context, stmt persistence.Statement) ([]PersistedGrant, error) {
	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, errors.Join(ErrLoadingGrantFailed, err)
	}
	defer r.db.CloseRows(ctx, rows)

	grants := make([]PersistedGrant, 0)
	for rows.Next() {
		var (
			grant        PersistedGrant
			creationTime persistence.Timestamp
			expiration   persistence.Timestamp
		)

		scanErr := rows.Scan(
			&grant.Key, &grant.Type, &grant.SubjectID, &grant.ClientID, &creationTime, &expiration, &grant.Data,
		)
		if scanErr != nil {
			return nil, errors.Join(ErrLoadingGrantFailed, scanErr)
		}

		grant.CreationTime = creationTime.Time
		if !expiration.Time.IsZero() {
			grant.Expiration = &expiration.Time
		}

		grants = append(grants, grant)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, errors.Join(ErrLoadingGrantFailed, rowsErr)
	}

	return grants, nil
}

// Add registers the insert of grant.
//
// Grants are issued by the token service, not by a command. Add is the seeding API for imports
// and fixtures and is not part of the Repository the CommandHandler depends on.
func (r *SQLRepository) Add(_ context.Context, grant PersistedGrant) error {
	record := goqu.Record{
		colKey:          grant.Key,
		colType:         grant.Type,
		colSubjectID:    grant.SubjectID,
		colClientID:     grant.ClientID,
		colCreationTime: grant.CreationTime.UTC(),
		colExpiration:   nil,
		colData:         grant.Data,
	}

	if grant.Expiration != nil {
		record[colExpiration] = grant.Expiration.UTC()
	}

	if err := r.uow.Register(r.db.Builder().Insert(persistence.TablePersistedGrants).Rows(record)); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	return nil
}

// Remove registers the delete of grant.
func (r *SQLRepository) Remove(_ context.Context, grant PersistedGrant) error {
	remove := r.db.Builder().
		Delete(persistence.TablePersistedGrants).
		Where(goqu.C(colKey).Eq(grant.Key))

	if err := r.uow.Register(remove); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	return nil
}
