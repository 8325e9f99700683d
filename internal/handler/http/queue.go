package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/utils"
	"github.com/MKhiriev/go-bizsync/models"
)

type queueResponse struct {
	Items []models.QueueItem `json:"items"`
}

type clearResponse struct {
	Resource string `json:"resource,omitempty"`
	Dropped  int64  `json:"dropped"`
}

func (h *Handler) getQueue(w http.ResponseWriter, r *http.Request) {
	items := h.sync.QueueItems(r.Context())
	if items == nil {
		items = make([]models.QueueItem, 0)
	}

	utils.WriteJSON(w, queueResponse{Items: items}, http.StatusOK)
}

// clearQueue drops the queue of {resource}, or of every resource when the
// path has no resource segment.
func (h *Handler) clearQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	resource := chi.URLParam(r, "resource")

	dropped, err := h.sync.ClearQueue(r.Context(), resource)
	if err != nil {
		log.Err(err).Str("resource", resource).Msg("clear queue failed")
		writeServiceError(w, err)
		return
	}

	log.Info().Str("resource", resource).Int64("dropped", dropped).Msg("queue cleared")
	utils.WriteJSON(w, clearResponse{Resource: resource, Dropped: dropped}, http.StatusOK)
}
