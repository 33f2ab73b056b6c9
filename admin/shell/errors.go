package shell

import "errors"

var (
	ErrNilDatabase         = errors.New("database must not be nil")
	ErrBuildingScopeFailed = errors.New("building request scope failed")
)
