package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by Update and Remove for an unknown id.
	ErrNotFound = errors.New("entity not found")
	// ErrPendingDelete is returned by Update and Remove for an entity whose
	// deletion is queued.
	ErrPendingDelete = errors.New("entity is pending deletion")
	// ErrUnknownResource is returned by Registry lookups.
	ErrUnknownResource = errors.New("unknown resource")

	errOffline         = errors.New("offline")
	errUnauthenticated = errors.New("no session")
)

// statusCoder is implemented by transport errors carrying an HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// failureMessage is the last_error text stored on a rejected queue item.
func failureMessage(err error) string {
	var sc statusCoder
	if errors.As(err, &sc) {
		return fmt.Sprintf("HTTP %d", sc.HTTPStatus())
	}
	return err.Error()
}
