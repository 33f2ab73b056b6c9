package apiresource

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/command-mediator-go/persistence"
)

const (
	colID            = "id"
	colName          = "name"
	colDisplayName   = "display_name"
	colDescription   = "description"
	colEnabled       = "enabled"
	colCreatedAt     = "created_at"
	colAPIResourceID = "api_resource_id"
	colType          = "type"
	colValue         = "value"
	colExpiration    = "expiration"
)

// SQLRepository reads API resources directly and registers changes on a persistence.UnitOfWork.
type SQLRepository struct {
	db    *persistence.Database
	uow   *persistence.UnitOfWork
	clock func() time.Time
}

// NewSQLRepository creates a SQLRepository whose changes are committed by uow.
func NewSQLRepository(db *persistence.Database, uow *persistence.UnitOfWork) (*SQLRepository, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	if uow == nil {
		return nil, ErrNilUnitOfWork
	}

	return &SQLRepository{db: db, uow: uow, clock: time.Now}, nil
}

// GetByName returns the API resource with its secrets, or nil if none is named name.
func (r *SQLRepository) GetByName(ctx context.Context, name string) (*ApiResource, error) {
	stmt := r.db.Builder().
		From(persistence.TableAPIResources).
		Select(colID, colName, colDisplayName, colDescription, colEnabled, colCreatedAt).
		Where(goqu.C(colName).Eq(name))

	resource, found, err := r.queryResource(ctx, stmt)
	if err != nil || !found {
		return nil, err
	}

	if resource.Secrets, err = r.querySecrets(ctx, resource.ID); err != nil {
		return nil, err
	}

	return &resource, nil
}

func (r *SQLRepository) queryResource(ctx context.Context, stmt persistence.Statement) (ApiResource, bool, error) {
	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return ApiResource{}, false, errors.Join(ErrLoadingResourceFailed, err)
	}
	defer r.db.CloseRows(ctx, rows)

	if !rows.Next() {
		return ApiResource{}, false, rowsErr(rows)
	}

	var (
		resource  ApiResource
		id        string
		createdAt persistence.Timestamp
	)

	scanErr := rows.Scan(&id, &resource.Name, &resource.DisplayName, &resource.Description, &resource.Enabled, &createdAt)
	if scanErr != nil {
		return ApiResource{}, false, errors.Join(ErrLoadingResourceFailed, scanErr)
	}

	if resource.ID, err = uuid.Parse(id); err != nil {
		return ApiResource{}, false, errors.Join(ErrLoadingResourceFailed, err)
	}

	resource.CreatedAt = createdAt.Time

	return resource, true, nil
}

func (r *SQLRepository) querySecrets(ctx context.Context, resourceID uuid.UUID) ([]Secret, error) {
	stmt := r.db.Builder().
		From(persistence.TableAPISecrets).
		Select(colID, colType, colValue, colDescription, colExpiration, colCreatedAt).
		Where(goqu.C(colAPIResourceID).Eq(resourceID.String())).
		Order(goqu.C(colCreatedAt).Asc(), goqu.C(colID).Asc())

	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, errors.Join(ErrLoadingResourceFailed, err)
	}
	defer r.db.CloseRows(ctx, rows)

	secrets := make([]Secret, 0)
	for rows.Next() {
		var (
			secret     Secret
			id         string
			expiration persistence.Timestamp
			createdAt  persistence.Timestamp
		)

		if scanErr := rows.Scan(&id, &secret.Type, &secret.Value, &secret.Description, &expiration, &createdAt); scanErr != nil {
			return nil, errors.Join(ErrLoadingResourceFailed, scanErr)
		}

		if secret.ID, err = uuid.Parse(id); err != nil {
			return nil, errors.Join(ErrLoadingResourceFailed, err)
		}

		if !expiration.Time.IsZero() {
			secret.Expiration = &expiration.Time
		}

		secret.CreatedAt = createdAt.Time
		secrets = append(secrets, secret)
	}

	return secrets, rowsErr(rows)
}

// Add registers the insert of resource and its secrets. Missing IDs and creation times are generated.
//
// No command registers API resources. Add is the seeding API for imports and fixtures
// and is not part of the Repository the CommandHandler depends on.
func (r *SQLRepository) Add(_ context.Context, resource ApiResource) error {
	if err := r.ensureIdentity(&resource.ID, &resource.CreatedAt); err != nil {
		return err
	}

	insert := r.db.Builder().
		Insert(persistence.TableAPIResources).
		Rows(goqu.Record{
			colID:          resource.ID.String(),
			colName:        resource.Name,
			colDisplayName: resource.DisplayName,
			colDescription: resource.Description,
			colEnabled:     resource.Enabled,
			colCreatedAt:   resource.CreatedAt.UTC(),
		})

	if err := r.uow.Register(insert); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	for _, secret := range resource.Secrets {
		if err := r.addSecret(resource.ID, secret); err != nil {
			return err
		}
	}

	return nil
}

func (r *SQLRepository) addSecret(resourceID uuid.UUID, secret Secret) error {
	if err := r.ensureIdentity(&secret.ID, &secret.CreatedAt); err != nil {
		return err
	}

	record := goqu.Record{
		colID:            secret.ID.String(),
		colAPIResourceID: resourceID.String(),
		colType:          secret.Type,
		colValue:         secret.Value,
		colDescription:   secret.Description,
		colExpiration:    nil,
		colCreatedAt:     secret.CreatedAt.UTC(),
	}

	if secret.Expiration != nil {
		record[colExpiration] = secret.Expiration.UTC()
	}

	if err := r.uow.Register(r.db.Builder().Insert(persistence.TableAPISecrets).Rows(record)); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	return nil
}

// RemoveSecret registers the delete of secret.
func (r *SQLRepository) RemoveSecret(_ context.Context, secret Secret) error {
	remove := r.db.Builder().
		Delete(persistence.TableAPISecrets).
		Where(goqu.C(colID).Eq(secret.ID.String()))

	if err := r.uow.Register(remove); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	return nil
}

func (r *SQLRepository) ensureIdentity(id *uuid.UUID, createdAt *time.Time) error {
	if *id == uuid.Nil {
		generated, err := uuid.NewV7()
		if err != nil {
			return errors.Join(ErrRegisteringChange, err)
		}

		*id = generated
	}

	if createdAt.IsZero() {
		*createdAt = r.clock()
	}

	return nil
}

func rowsErr(rows persistence.Rows) error {
	if err := rows.Err(); err != nil {
		return errors.Join(ErrLoadingResourceFailed, err)
	}

	return nil
}
