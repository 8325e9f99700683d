package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Route("/api", func(r chi.Router) {
		r.Get("/queue", h.getQueue)
		r.Delete("/queue", h.clearQueue)
		r.Delete("/queue/{resource}", h.clearQueue)

		r.Post("/sync", h.syncAll)
		r.Post("/sync/{resource}", h.syncResource)

		r.Get("/resources", h.listResources)
		r.Get("/resources/{resource}", h.getResource)

		if h.appInfo != nil {
			r.Get("/version", h.getVersion)
		}
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
