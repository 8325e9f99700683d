package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bizsync/internal/app"
	"github.com/MKhiriev/go-bizsync/internal/service"
	"github.com/MKhiriev/go-bizsync/internal/store"
	"github.com/MKhiriev/go-bizsync/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrUnknownResource: http.StatusNotFound,
	store.ErrUnknownTable:      http.StatusNotFound,

	context.Canceled:         http.StatusServiceUnavailable,
	context.DeadlineExceeded: http.StatusGatewayTimeout,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// publicMessages hides internal error texts behind a fixed message. Statuses
// not listed here expose err.Error() as is.
var publicMessages = map[int]string{
	http.StatusInternalServerError: app.MsgInternalServerError,
	http.StatusServiceUnavailable:  app.MsgRequestCanceled,
	http.StatusGatewayTimeout:      app.MsgRequestTimeout,
}

// writeServiceError answers with the status mapped from err.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	message, ok := publicMessages[status]
	if !ok {
		message = err.Error()
	}
	utils.WriteError(w, message, status)
}
