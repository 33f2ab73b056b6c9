package eventstore

import "errors"

var (
	ErrNilEvent               = errors.New("event must not be nil")
	ErrNilRepository          = errors.New("repository must not be nil")
	ErrNilSystemUser          = errors.New("system user must not be nil")
	ErrNilClock               = errors.New("clock must not be nil")
	ErrEmptyMessageType       = errors.New("message type must not be empty")
	ErrInvalidDataJSON        = errors.New("data json is not valid")
	ErrSerializingEventFailed = errors.New("serializing event failed")
	ErrDecodingPayloadFailed  = errors.New("decoding payload failed")
	ErrStoringEventFailed     = errors.New("storing event failed")
)
