// internal/app/features/workbookview/routes.go
package workbookview

import (
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes is mounted at /workbooks/{id}.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeView)
		pr.Get("/export.xlsx", h.ServeExport)
		pr.Post("/validate", h.HandleValidate)

		// METADATA
		pr.Post("/metadata", h.HandleMetadata)

		// WEEKS
		pr.Post("/weeks/add", h.HandleAddWeek)
		pr.Post("/weeks/{week}/delete", h.HandleDeleteWeek)
		pr.Post("/weeks/{week}/attributes", h.HandleGraduateAttributes)

		// ACTIVITIES
		pr.Get("/weeks/{week}/activities/new", h.ServeNewActivity)
		pr.Post("/weeks/{week}/activities", h.HandleAddActivity)
		pr.Get("/activities/{activityID}/edit", h.ServeEditActivity)
		pr.Post("/activities/{activityID}", h.HandleEditActivity)
		pr.Post("/activities/{activityID}/delete", h.HandleDeleteActivity)

		// CONTRIBUTORS
		pr.Post("/contributors/add", h.HandleAddContributor)
		pr.Post("/contributors/remove", h.HandleRemoveContributor)

		// WHOLE WORKBOOK
		pr.Post("/duplicate", h.HandleDuplicate)
		pr.Post("/delete", h.HandleDelete)
	})

	return r
}
