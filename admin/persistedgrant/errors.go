package persistedgrant

import "errors"

var (
	ErrNilRepository      = errors.New("persisted grant repository must not be nil")
	ErrNilCommandSender   = errors.New("command sender must not be nil")
	ErrNilDatabase        = errors.New("database must not be nil")
	ErrNilUnitOfWork      = errors.New("unit of work must not be nil")
	ErrNilClock           = errors.New("clock must not be nil")
	ErrLoadingGrantFailed = errors.New("loading persisted grant failed")
	ErrRegisteringChange  = errors.New("registering persisted grant change failed")
)
