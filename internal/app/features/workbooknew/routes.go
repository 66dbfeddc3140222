// internal/app/features/workbooknew/routes.go
package workbooknew

import (
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeNew)
		pr.Post("/", h.HandleCreate)
	})

	return r
}
