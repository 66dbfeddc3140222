package testutil

import (
	"context"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	return WithChiURLParams(r, map[string]string{key: value})
}

// WithChiURLParams adds several chi URL parameters at once.
func WithChiURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Reference is a small, consistent set of reference collections.
type Reference struct {
	Users              []models.User
	LearningPlatforms  []models.LearningPlatform
	LearningActivities []models.LearningActivity
	LearningTypes      []models.LearningType
	TaskStatuses       []models.TaskStatus
	Locations          []models.Location
	Areas              []models.Area
	Schools            []models.School
	GraduateAttributes []models.GraduateAttribute
}

// DefaultReference returns the fixture collections used across feature
// tests. Ids are stable so tests can refer to them directly.
func DefaultReference() Reference {
	lead, staff := LeadUser(), StaffUser()
	return Reference{
		Users: []models.User{
			{ID: lead.ID, Name: lead.Name},
			{ID: staff.ID, Name: staff.Name},
		},
		LearningPlatforms: []models.LearningPlatform{
			{ID: "p-moodle", Name: "Moodle"},
			{ID: "p-canvas", Name: "Canvas"},
		},
		LearningActivities: []models.LearningActivity{
			{ID: "la-quiz", Name: "Quiz", LearningPlatformID: "p-moodle"},
			{ID: "la-forum", Name: "Forum", LearningPlatformID: "p-moodle"},
			{ID: "la-page", Name: "Page", LearningPlatformID: "p-canvas"},
		},
		LearningTypes: []models.LearningType{
			{ID: "lt-acq", Name: "Acquisition"},
			{ID: "lt-prac", Name: "Practice"},
		},
		TaskStatuses: []models.TaskStatus{
			{ID: "ts-todo", Name: "Not started"},
			{ID: "ts-done", Name: "Done"},
		},
		Locations: []models.Location{
			{ID: "loc-online", Name: "Online"},
			{ID: "loc-campus", Name: "Campus"},
		},
		Areas: []models.Area{{ID: "a-sci", Name: "Science"}},
		Schools: []models.School{
			{ID: "s-bio", Name: "Biology", AreaID: "a-sci"},
		},
		GraduateAttributes: []models.GraduateAttribute{
			{ID: "ga-crit", Name: "Critical thinking"},
			{ID: "ga-comm", Name: "Communication"},
		},
	}
}

// SeedReference registers every reference collection route on f.
// Learning activities are filtered by the learning_platform_id query.
func SeedReference(f *FakeBackend, ref Reference) {
	f.JSON(http.MethodGet, "/users/", http.StatusOK, ref.Users)
	f.JSON(http.MethodGet, "/learning-platforms/", http.StatusOK, ref.LearningPlatforms)
	f.JSON(http.MethodGet, "/learning-types/", http.StatusOK, ref.LearningTypes)
	f.JSON(http.MethodGet, "/task-statuses/", http.StatusOK, ref.TaskStatuses)
	f.JSON(http.MethodGet, "/locations/", http.StatusOK, ref.Locations)
	f.JSON(http.MethodGet, "/area/", http.StatusOK, ref.Areas)
	f.JSON(http.MethodGet, "/schools/", http.StatusOK, ref.Schools)
	f.JSON(http.MethodGet, "/graduate_attributes/", http.StatusOK, ref.GraduateAttributes)
	f.Handle(http.MethodGet, "/learning-activities/", func(w http.ResponseWriter, r *http.Request) {
		pid := r.URL.Query().Get("learning_platform_id")
		out := []models.LearningActivity{}
		for _, la := range ref.LearningActivities {
			if pid == "" || la.LearningPlatformID == pid {
				out = append(out, la)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})
}
