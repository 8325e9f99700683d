package adapter

import (
	"errors"
	"fmt"
)

// Sentinel errors for well-known response statuses. A non-2xx response is
// returned as [*HTTPError] wrapping one of these, so both errors.Is and
// errors.As work on the result.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessableEntity = errors.New("unprocessable entity")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrMalformedResponse is returned when a 2xx body does not have the
	// expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// HTTPError is a rejected request: the server answered with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d: %v: %s", e.StatusCode, e.Err, e.Body)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the response status code.
func (e *HTTPError) HTTPStatus() int {
	return e.StatusCode
}
