package identityresource

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/command-mediator-go/persistence"
)

const (
	colID                      = "id"
	colName                    = "name"
	colDisplayName             = "display_name"
	colDescription             = "description"
	colEnabled                 = "enabled"
	colRequired                = "required"
	colEmphasize               = "emphasize"
	colShowInDiscoveryDocument = "show_in_discovery_document"
	colCreatedAt               = "created_at"
	colIdentityResourceID      = "identity_resource_id"
	colType                    = "type"
)

// SQLRepository reads identity resources directly and registers changes on a persistence.UnitOfWork.
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

// GetByName returns the identity resource with its user claims, or nil if none is named name.
func (r *SQLRepository) GetByName(ctx context.Context, name string) (*IdentityResource, error) {
	stmt := r.db.Builder().
		From(persistence.TableIdentityResources).
		Select(
			colID, colName, colDisplayName, colDescription, colEnabled,
			colRequired, colEmphasize, colShowInDiscoveryDocument, colCreatedAt,
		).
		Where(goqu.C(colName).Eq(name))

	resource, found, err := r.queryResource(ctx, stmt)
	if err != nil || !found {
		return nil, err
	}

	claims, err := r.queryClaims(ctx, resource.ID)
	if err != nil {
		return nil, err
	}

	resource.UserClaims = claims

	return &resource, nil
}

func (r *SQLRepository) queryResource(ctx context.Context, stmt persistence.Statement) (IdentityResource, bool, error) {
	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return IdentityResource{}, false, errors.Join(ErrLoadingResourceFailed, err)
	}
	defer r.db.CloseRows(ctx, rows)

	if !rows.Next() {
		return IdentityResource{}, false, rowsErr(rows)
	}

	var (
		resource  IdentityResource
		id        string
		createdAt persistence.Timestamp
	)

	scanErr := rows.Scan(
		&id, &resource.Name, &resource.DisplayName, &resource.Description, &resource.Enabled,
		&resource.Required, &resource.Emphasize, &resource.ShowInDiscoveryDocument, &createdAt,
	)
	if scanErr != nil {
		return IdentityResource{}, false, errors.Join(ErrLoadingResourceFailed, scanErr)
	}

	if resource.ID, err = uuid.Parse(id); err != nil {
		return IdentityResource{}, false, errors.Join(ErrLoadingResourceFailed, err)
	}

	resource.CreatedAt = createdAt.Time

	return resource, true, nil
}

func (r *SQLRepository) queryClaims(ctx context.Context, resourceID uuid.UUID) ([]string, error) {
	stmt := r.db.Builder().
		From(persistence.TableIdentityResourceClaims).
		Select(colType).
		Where(goqu.C(colIdentityResourceID).Eq(resourceID.String())).
		Order(goqu.C(colType).Asc())

	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, errors.Join(ErrLoadingResourceFailed, err)
	}
	defer r.db.CloseRows(ctx, rows)

	claims := make([]string, 0)
	for rows.Next() {
		var claim string
		if scanErr := rows.Scan(&claim); scanErr != nil {
			return nil, errors.Join(ErrLoadingResourceFailed, scanErr)
		}

		claims = append(claims, claim)
	}

	return claims, rowsErr(rows)
}

// Add registers the insert of resource and its user claims. A missing ID is generated.
func (r *SQLRepository) Add(_ context.Context, resource IdentityResource) error {
	if resource.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Join(ErrRegisteringChange, err)
		}

		resource.ID = id
	}

	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = r.clock()
	}

	insert := r.db.Builder().
		Insert(persistence.TableIdentityResources).
		Rows(goqu.Record{
			colID:                      resource.ID.String(),
			colName:                    resource.Name,
			colDisplayName:             resource.DisplayName,
			colDescription:             resource.Description,
			colEnabled:                 resource.Enabled,
			colRequired:                resource.Required,
			colEmphasize:               resource.Emphasize,
			colShowInDiscoveryDocument: resource.ShowInDiscoveryDocument,
			colCreatedAt:               resource.CreatedAt.UTC(),
		})

	if err := r.uow.Register(insert); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	return r.registerClaims(resource.ID, resource.UserClaims)
}

// UpdateWithChildren registers the update of the loaded resource saved and the replacement of its user claims.
// The stored ID and creation time are kept.
func (r *SQLRepository) UpdateWithChildren(_ context.Context, saved IdentityResource, resource IdentityResource) error {
	update := r.db.Builder().
		Update(persistence.TableIdentityResources).
		Set(goqu.Record{
			colName:                    resource.Name,
			colDisplayName:             resource.DisplayName,
			colDescription:             resource.Description,
			colEnabled:                 resource.Enabled,
			colRequired:                resource.Required,
			colEmphasize:               resource.Emphasize,
			colShowInDiscoveryDocument: resource.ShowInDiscoveryDocument,
		}).
		Where(goqu.C(colID).Eq(saved.ID.String()))

	if err := r.uow.Register(update); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	if err := r.registerClaimsRemoval(saved.ID); err != nil {
		return err
	}

	return r.registerClaims(saved.ID, resource.UserClaims)
}

// Remove registers the delete of resource and its user claims.
func (r *SQLRepository) Remove(_ context.Context, resource IdentityResource) error {
	if err := r.registerClaimsRemoval(resource.ID); err != nil {
		return err
	}

	remove := r.db.Builder().
		Delete(persistence.TableIdentityResources).
		Where(goqu.C(colID).Eq(resource.ID.String()))

	if err := r.uow.Register(remove); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	return nil
}

func (r *SQLRepository) registerClaims(resourceID uuid.UUID, claims []string) error {
	if len(claims) == 0 {
		return nil
	}

	rows := make([]any, 0, len(claims))
	for _, claim := range claims {
		rows = append(rows, goqu.Record{colIdentityResourceID: resourceID.String(), colType: claim})
	}

	insert := r.db.Builder().
		Insert(persistence.TableIdentityResourceClaims).
		Rows(rows...)

	if err := r.uow.Register(insert); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	return nil
}

func (r *SQLRepository) registerClaimsRemoval(resourceID uuid.UUID) error {
	remove := r.db.Builder().
		Delete(persistence.TableIdentityResourceClaims).
		Where(goqu.C(colIdentityResourceID).Eq(resourceID.String()))

	if err := r.uow.Register(remove); err != nil {
		return errors.Join(ErrRegisteringChange, err)
	}

	return nil
}

func rowsErr(rows persistence.Rows) error {
	if err := rows.Err(); err != nil {
		return errors.Join(ErrLoadingResourceFailed, err)
	}

	return nil
}
