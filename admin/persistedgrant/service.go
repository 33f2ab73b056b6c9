package persistedgrant

import (
	"context"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

// CommandSender is the part of the Bus the Service needs.
type CommandSender interface {
	SendCommand(ctx context.Context, command mediator.Command) (bool, error)
}

// Service is the entry point for callers: it answers grant queries and dispatches grant commands.
type Service struct {
	bus        CommandSender
	repository Repository
}

// NewService creates a Service for one request scope.
func NewService(bus CommandSender, repository Repository) (Service, error) {
	if bus == nil {
		return Service{}, ErrNilCommandSender
	}

	if repository == nil {
		return Service{}, ErrNilRepository
	}

	return Service{bus: bus, repository: repository}, nil
}

// List returns one page of grants matching search and the total number of matches.
func (s Service) List(ctx context.Context, search Search) (ListOf[View], error) {
	search = search.normalized()

	grants, err := s.repository.Search(ctx, search)
	if err != nil {
		return ListOf[View]{}, err
	}

	total, err := s.repository.Count(ctx, search)
	if err != nil {
		return ListOf[View]{}, err
	}

	views := make([]View, 0, len(grants))
	for _, grant := range grants {
		views = append(views, toView(grant))
	}

	return ListOf[View]{Items: views, Total: total}, nil
}

// Remove dispatches RemovePersistedGrant for key. Rejections are reported as Notifications.
func (s Service) Remove(ctx context.Context, key string) (bool, error) {
	return s.bus.SendCommand(ctx, RemovePersistedGrant{Key: key})
}
