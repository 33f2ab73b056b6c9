package eventstore

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// payloadAPI keeps numbers as json.Number while pruning, so large integers survive unchanged,
// and sorts object keys, so equal events serialize to equal bytes.
var payloadAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

// SerializePayload renders event as JSON without null-valued object members, at any depth.
// Null elements of arrays are kept so positions stay meaningful.
func SerializePayload(event any) ([]byte, error) {
	if event == nil {
		return nil, ErrNilEvent
	}

	raw, err := payloadAPI.Marshal(event)
	if err != nil {
		return nil, errors.Join(ErrSerializingEventFailed, err)
	}

	var tree any
	if err = payloadAPI.Unmarshal(raw, &tree); err != nil {
		return nil, errors.Join(ErrSerializingEventFailed, err)
	}

	pruned, err := payloadAPI.Marshal(pruneNulls(tree))
	if err != nil {
		return nil, errors.Join(ErrSerializingEventFailed, err)
	}

	return pruned, nil
}

// DecodePayload decodes data produced by SerializePayload into target.
// Fields that were omitted as null keep their zero value.
func DecodePayload(data []byte, target any) error {
	if err := jsoniter.ConfigFastest.Unmarshal(data, target); err != nil {
		return errors.Join(ErrDecodingPayloadFailed, err)
	}

	return nil
}

func pruneNulls(node any) any {
	switch typed := node.(type) {
	case map[string]any:
		for key, value := range typed {
			if value == nil {
				delete(typed, key)
				continue
			}

			typed[key] = pruneNulls(value)
		}

		return typed

	case []any:
		for i, value := range typed {
			typed[i] = pruneNulls(value)
		}

		return typed

	default:
		return node
	}
}
