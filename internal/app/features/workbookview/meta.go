// internal/app/features/workbookview/meta.go
package workbookview

import (
	"context"
	"net/http"
	"slices"

	"github.com/dalemusser/workbookhub/internal/app/system/inputval"
	"github.com/dalemusser/workbookhub/internal/app/system/normalize"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"go.uber.org/zap"
)

// MsgSchoolNotInArea rejects a school outside the chosen area.
const MsgSchoolNotInArea = "School is not in the selected area"

// MsgSchoolCheckFailed rejects the save when the schools could not be loaded.
const MsgSchoolCheckFailed = "Could not check the school against the area. Please try again."

type metadataInput struct {
	CourseName string `validate:"required,max=200" label:"Course name"`
	PlatformID string `validate:"required" label:"Learning platform"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/metadata                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleMetadata patches course name, learning platform, area and school.
func (h *Handler) HandleMetadata(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}

	name := normalize.Name(r.FormValue("course_name"))
	platformID := normalize.FilterID(r.FormValue("learning_platform_id"))
	areaID := normalize.FilterID(r.FormValue("area_id"))
	schoolID := normalize.FilterID(r.FormValue("school_id"))

	if res := inputval.Validate(metadataInput{CourseName: name, PlatformID: platformID}); res.HasErrors() {
		h.render(w, r, id, &dialog{Title: "Details not saved", Messages: res.Messages()})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if areaID != "" && schoolID != "" {
		set, err := h.Ref.Load(ctx, "", refdata.Schools)
		if err != nil {
			h.Log.Warn("metadata: schools unavailable", zap.String("workbook_id", id), zap.Error(err))
			h.render(w, r, id, &dialog{Title: "Details not saved", Messages: []string{MsgSchoolCheckFailed}})
			return
		}
		if !slices.ContainsFunc(set.SchoolsInArea(areaID), func(s models.School) bool { return s.ID == schoolID }) {
			h.render(w, r, id, &dialog{Title: "Details not saved", Messages: []string{MsgSchoolNotInArea}})
			return
		}
	}

	details, err := h.Backend.WorkbookDetails(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "metadata: load workbook", err, viewURL(id))
		return
	}

	upd := models.WorkbookUpdate{
		CourseName:         &name,
		LearningPlatformID: &platformID,
		AreaID:             &areaID,
		SchoolID:           &schoolID,
	}
	if _, err := h.Backend.UpdateWorkbook(ctx, id, upd); err != nil {
		h.ErrLog.LogBackendError(w, r, "metadata: update", err, viewURL(id))
		return
	}

	if details.Workbook.LearningPlatformID != platformID {
		h.Ref.Invalidate(ctx, platformID)
		h.Log.Info("workbook platform changed", zap.String("workbook_id", id), zap.String("platform_id", platformID))
	}
	back(w, r, id, "")
}
