package shell

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/command-mediator-go/admin/apiresource"
	"github.com/AntonStoeckl/command-mediator-go/admin/identityresource"
	"github.com/AntonStoeckl/command-mediator-go/admin/persistedgrant"
	"github.com/AntonStoeckl/command-mediator-go/mediator"
	"github.com/AntonStoeckl/command-mediator-go/persistence"
)

// Dependencies are the long-lived collaborators shared by all request scopes.
type Dependencies struct {
	Database *persistence.Database

	// AuditTrail receives every domain event, typically an *eventstore.EventStore. Optional.
	AuditTrail mediator.Subscriber

	// BusOptions configure logging, metrics and tracing of each request's Bus.
	BusOptions []mediator.Option

	// Clock stamps the raised events. Defaults to time.Now.
	Clock func() time.Time
}

// Scope holds everything one request needs to send administration commands and read the results.
// Its UnitOfWork commits once, so a Scope serves exactly one command.
type Scope struct {
	Bus           *mediator.Bus
	Notifications *mediator.NotificationCollector
	UnitOfWork    *persistence.UnitOfWork

	IdentityResources *identityresource.SQLRepository
	ApiResources      *apiresource.SQLRepository
	PersistedGrants   *persistedgrant.SQLRepository

	PersistedGrantService persistedgrant.Service
}

// NewScope builds a Scope for one request.
func NewScope(ctx context.Context, deps Dependencies) (*Scope, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if deps.Database == nil {
		return nil, ErrNilDatabase
	}

	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	bus, err := mediator.NewBus(deps.BusOptions...)
	if err != nil {
		return nil, errors.Join(ErrBuildingScopeFailed, err)
	}

	s := &Scope{
		Bus:           bus,
		Notifications: mediator.NewNotificationCollector(),
		UnitOfWork:    deps.Database.NewUnitOfWork(),
	}

	if err = s.subscribe(deps.AuditTrail); err != nil {
		return nil, errors.Join(ErrBuildingScopeFailed, err)
	}

	if err = s.buildRepositories(deps.Database); err != nil {
		return nil, errors.Join(ErrBuildingScopeFailed, err)
	}

	if err = s.registerHandlers(deps.Clock); err != nil {
		return nil, errors.Join(ErrBuildingScopeFailed, err)
	}

	if s.PersistedGrantService, err = persistedgrant.NewService(s.Bus, s.PersistedGrants); err != nil {
		return nil, errors.Join(ErrBuildingScopeFailed, err)
	}

	return s, nil
}

// Send dispatches command and returns its result together with the Notifications collected so far.
func (s *Scope) Send(ctx context.Context, command mediator.Command) (bool, []mediator.Notification, error) {
	ok, err := s.Bus.SendCommand(ctx, command)
	return ok, s.Notifications.Notifications(), err
}

func (s *Scope) subscribe(auditTrail mediator.Subscriber) error {
	if err := s.Bus.Subscribe(mediator.NotificationMessageType, s.Notifications); err != nil {
		return err
	}

	if auditTrail == nil {
		return nil
	}

	return s.Bus.SubscribeToDomainEvents(auditTrail)
}

func (s *Scope) buildRepositories(db *persistence.Database) error {
	var err error

	if s.IdentityResources, err = identityresource.NewSQLRepository(db, s.UnitOfWork); err != nil {
		return err
	}

	if s.ApiResources, err = apiresource.NewSQLRepository(db, s.UnitOfWork); err != nil {
		return err
	}

	s.PersistedGrants, err = persistedgrant.NewSQLRepository(db, s.UnitOfWork)

	return err
}

func (s *Scope) registerHandlers(clock func() time.Time) error {
	base := mediator.CommandHandler{
		Bus:           s.Bus,
		Notifications: s.Notifications,
		UnitOfWork:    s.UnitOfWork,
	}

	identityResources, err := identityresource.NewCommandHandler(base, s.IdentityResources, identityresource.WithClock(clock))
	if err != nil {
		return err
	}

	apiResources, err := apiresource.NewCommandHandler(base, s.ApiResources, apiresource.WithClock(clock))
	if err != nil {
		return err
	}

	persistedGrants, err := persistedgrant.NewCommandHandler(base, s.PersistedGrants, persistedgrant.WithClock(clock))
	if err != nil {
		return err
	}

	return errors.Join(
		identityResources.RegisterWith(s.Bus),
		apiResources.RegisterWith(s.Bus),
		persistedGrants.RegisterWith(s.Bus),
	)
}
