package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bizsync/internal/logger"
	"github.com/MKhiriev/go-bizsync/internal/utils"
)

// syncAll drains and reloads every resource, then answers with the fresh
// summaries. Per-resource failures show up in the summaries.
func (h *Handler) syncAll(w http.ResponseWriter, r *http.Request) {
	if err := h.sync.SyncAll(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Msg("sync interrupted")
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, h.sync.Summaries(), http.StatusOK)
}

func (h *Handler) syncResource(w http.ResponseWriter, r *http.Request) {
	resource := chi.URLParam(r, "resource")

	if err := h.sync.Sync(r.Context(), resource); err != nil {
		logger.FromRequest(r).Err(err).Str("resource", resource).Msg("sync failed")
		writeServiceError(w, err)
		return
	}

	for _, s := range h.sync.Summaries() {
		if s.Resource == resource {
			utils.WriteJSON(w, s, http.StatusOK)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
