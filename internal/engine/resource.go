package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Resource describes one synchronized collection.
type Resource[T any] struct {
	// Table is the cache table suffix and queue discriminator (e.g. "clients").
	Table string
	// Endpoint is the collection path. Default: "/" + Table.
	Endpoint string
	// ListKey is the envelope key of the GET response. Default: Table.
	ListKey string
	// IDKey is the key of the server id in the create response
	// (e.g. "client_id").
	IDKey string
	// Parse decodes a server record. Default: json.Unmarshal.
	Parse func(raw json.RawMessage) (T, error)
	// ExtractID reads the server id of a record. Default: the "id" field.
	ExtractID func(raw json.RawMessage) (int64, error)
}

var errMissingID = errors.New("record has no id")

func (r Resource[T]) withDefaults() Resource[T] {
	if r.Endpoint == "" {
		r.Endpoint = "/" + r.Table
	}
	if r.ListKey == "" {
		r.ListKey = r.Table
	}
	if r.Parse == nil {
		r.Parse = func(raw json.RawMessage) (T, error) {
			var v T
			err := json.Unmarshal(raw, &v)
			return v, err
		}
	}
	if r.ExtractID == nil {
		r.ExtractID = ExtractIDField("id")
	}
	return r
}

// ExtractIDField returns an ExtractID func reading key from a JSON object.
func ExtractIDField(key string) func(raw json.RawMessage) (int64, error) {
	return func(raw json.RawMessage) (int64, error) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return 0, fmt.Errorf("decode record: %w", err)
		}
		v, ok := obj[key]
		if !ok {
			return 0, fmt.Errorf("%w: key %q", errMissingID, key)
		}
		return ParseServerID(v)
	}
}

// ParseServerID accepts a positive id encoded as a JSON number or a numeric
// string.
func ParseServerID(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, errMissingID
	}

	var s string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, fmt.Errorf("decode id: %w", err)
		}
	} else {
		s = string(raw)
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// numbers like 42.0
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int64(f)) {
			return 0, fmt.Errorf("invalid id %s: %w", string(raw), err)
		}
		id = int64(f)
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %d", id)
	}
	return id, nil
}
