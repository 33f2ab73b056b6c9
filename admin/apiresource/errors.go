package apiresource

import "errors"

var (
	ErrNilRepository         = errors.New("api resource repository must not be nil")
	ErrNilDatabase           = errors.New("database must not be nil")
	ErrNilUnitOfWork         = errors.New("unit of work must not be nil")
	ErrNilClock              = errors.New("clock must not be nil")
	ErrLoadingResourceFailed = errors.New("loading api resource failed")
	ErrRegisteringChange     = errors.New("registering api resource change failed")
)
