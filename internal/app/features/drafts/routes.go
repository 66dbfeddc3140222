// internal/app/features/drafts/routes.go
package drafts

import (
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/edit", h.ServeEdit)

		// METADATA
		pr.Post("/edit/start-date", h.HandleStartDate)
		pr.Post("/edit/platform", h.HandlePlatform)
		pr.Post("/edit/metadata", h.HandleMetadata)

		// WEEKS
		pr.Post("/edit/weeks/add", h.HandleAddWeek)
		pr.Post("/edit/weeks/{week}/delete", h.HandleDeleteWeek)

		// ACTIVITIES
		pr.Get("/edit/weeks/{week}/activities/new", h.ServeNewActivity)
		pr.Post("/edit/weeks/{week}/activities", h.HandleAddActivity)
		pr.Get("/edit/weeks/{week}/activities/{index}/edit", h.ServeEditActivity)
		pr.Post("/edit/weeks/{week}/activities/{index}", h.HandleEditActivity)
		pr.Post("/edit/weeks/{week}/activities/{index}/delete", h.HandleDeleteActivity)

		// CONTRIBUTORS
		pr.Post("/edit/contributors/add", h.HandleAddContributor)
		pr.Post("/edit/contributors/remove", h.HandleRemoveContributor)

		// VALIDATE / PUBLISH / DISCARD
		pr.Post("/edit/validate", h.HandleValidate)
		pr.Post("/edit/publish", h.HandlePublish)
		pr.Post("/edit/discard", h.HandleDiscard)
	})

	return r
}
