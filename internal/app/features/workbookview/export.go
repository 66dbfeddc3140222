// internal/app/features/workbookview/export.go
package workbookview

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/app/system/workload"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /workbooks/{id}/export.xlsx                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeExport downloads the workbook as a spreadsheet.
func (h *Handler) ServeExport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Export())
	defer cancel()

	p, err := h.load(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "export: load workbook", err, viewURL(id))
		return
	}
	set, err := h.Ref.Load(ctx, "", refdata.Areas, refdata.Schools)
	if err != nil {
		h.Log.Warn("export: area and school names unavailable", zap.String("workbook_id", id), zap.Error(err))
	}

	wb := p.Details.Workbook
	in := workload.ExportInput{
		Details:      p.Details,
		AreaName:     set.AreaName(wb.AreaID),
		SchoolName:   set.SchoolName(wb.SchoolID),
		Contributors: p.Contributors,
		Dashboard:    workload.PrepareDashboardData(workload.RowsFromDetails(p.Details.Activities), workload.LearningTypeCatalog),
	}

	var buf bytes.Buffer
	if err := workload.ExportXLSX(&buf, in); err != nil {
		h.ErrLog.LogServerError(w, r, "export: write spreadsheet", err, "Could not create the spreadsheet.", viewURL(id))
		return
	}

	w.Header().Set("Content-Type", workload.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(wb.CourseName)))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	_, _ = buf.WriteTo(w)
}

// exportFilename turns a course name into a safe download name.
func exportFilename(course string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(course) {
		switch {
		case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "workbook"
	}
	return name + ".xlsx"
}
