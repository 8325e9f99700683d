package adapter

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ResourceAPI is the per-resource REST contract of the business backend.
// endpoint is the collection path (e.g. "/clients").
type ResourceAPI interface {
	// List fetches the collection and returns the records found under
	// listKey in the response envelope.
	List(ctx context.Context, endpoint, listKey string) ([]json.RawMessage, error)

	// Create posts a new record and returns the decoded response object,
	// which carries the server-assigned id.
	Create(ctx context.Context, endpoint string, payload json.RawMessage, requestID string) (map[string]json.RawMessage, error)

	// Update replaces the fields of record id.
	Update(ctx context.Context, endpoint string, id int64, payload json.RawMessage, requestID string) error

	// Delete removes record id.
	Delete(ctx context.Context, endpoint string, id int64, requestID string) error
}

// TokenSource supplies the bearer token of the current session. An empty
// token sends the request without an Authorization header.
type TokenSource interface {
	Token() string
}
