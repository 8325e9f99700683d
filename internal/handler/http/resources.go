package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/internal/utils"
)

func (h *Handler) listResources(w http.ResponseWriter, r *http.Request) {
	summaries := h.sync.Summaries()
	if summaries == nil {
		summaries = make([]engine.Summary, 0)
	}

	utils.WriteJSON(w, summaries, http.StatusOK)
}

func (h *Handler) getResource(w http.ResponseWriter, r *http.Request) {
	items, err := h.sync.Items(chi.URLParam(r, "resource"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}
