// internal/app/features/drafts/meta.go
package drafts

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/workbookhub/internal/app/system/inputval"
	"github.com/dalemusser/workbookhub/internal/app/system/normalize"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"go.uber.org/zap"
)

type startDateInput struct {
	StartDate string `validate:"required,isodate" label:"Start date"`
}

type metadataInput struct {
	CourseName string `validate:"max=200" label:"Course name"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/start-date                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleStartDate moves the whole schedule to a new start date.
func (h *Handler) HandleStartDate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	in := startDateInput{StartDate: strings.TrimSpace(r.FormValue("start_date"))}
	if res := inputval.Validate(in); res.HasErrors() {
		h.renderEdit(w, r, s, &dialog{Title: "Start date not changed", Messages: res.Messages()})
		return
	}
	start, _ := models.ParseDate(in.StartDate)
	s.Draft.ChangeStartDate(start)
	h.save(w, r, s, "")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/platform                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// HandlePlatform switches the learning platform. Existing activities keep
// their learning activity; the platform's learning activities are fetched
// afresh for the next form.
func (h *Handler) HandlePlatform(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	pid := normalize.FilterID(r.FormValue("learning_platform_id"))
	if s.Draft.ChangePlatform(pid) {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		h.Ref.Invalidate(ctx, pid)
		cancel()
		h.Log.Info("draft platform changed", zap.String("draft_id", s.ID), zap.String("platform_id", pid))
	}
	h.save(w, r, s, "")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/metadata                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleMetadata updates course name, area and school.
func (h *Handler) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	name := normalize.Name(r.FormValue("course_name"))
	areaID := normalize.FilterID(r.FormValue("area_id"))
	schoolID := normalize.FilterID(r.FormValue("school_id"))

	if res := inputval.Validate(metadataInput{CourseName: name}); res.HasErrors() {
		h.renderEdit(w, r, s, &dialog{Title: "Details not saved", Messages: res.Messages()})
		return
	}

	if areaID != "" && schoolID != "" {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
		set, err := h.Ref.Load(ctx, "", refdata.Schools)
		cancel()
		if err != nil {
			h.Log.Warn("metadata: schools unavailable", zap.String("draft_id", s.ID), zap.Error(err))
			h.renderEdit(w, r, s, &dialog{Title: "Details not saved", Messages: []string{"Could not check the school against the area. Please try again."}})
			return
		}
		if !schoolInArea(set, areaID, schoolID) {
			h.renderEdit(w, r, s, &dialog{Title: "Details not saved", Messages: []string{"School is not in the selected area"}})
			return
		}
	}

	s.Draft.Workbook.CourseName = name
	s.Draft.Workbook.AreaID = areaID
	s.Draft.Workbook.SchoolID = schoolID
	h.save(w, r, s, "")
}

func schoolInArea(set *refdata.Set, areaID, schoolID string) bool {
	for _, sc := range set.SchoolsInArea(areaID) {
		if sc.ID == schoolID {
			return true
		}
	}
	return false
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/contributors/{add,remove}                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleAddContributor(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	s.Draft.AddContributor(normalize.FilterID(r.FormValue("user_id")))
	h.save(w, r, s, "contributors")
}

func (h *Handler) HandleRemoveContributor(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	s.Draft.RemoveContributor(normalize.FilterID(r.FormValue("user_id")))
	h.save(w, r, s, "contributors")
}
