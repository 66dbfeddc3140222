// internal/app/features/workbooks/routes.go
package workbooks

import (
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/search", h.ServeSearch)
	})

	return r
}
