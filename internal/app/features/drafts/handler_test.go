package drafts_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/dalemusser/workbookhub/internal/app/features/drafts"
	uierrors "github.com/dalemusser/workbookhub/internal/app/features/errors"
	"github.com/dalemusser/workbookhub/internal/app/system/publish"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/dalemusser/workbookhub/internal/testutil"
	"go.uber.org/zap"
)

const draftID = "draft-under-test"

type env struct {
	t      *testing.T
	h      *drafts.Handler
	fb     *testutil.FakeBackend
	drafts *testutil.MemDrafts
	user   testutil.TestUser
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger := zap.NewNop()
	fb := testutil.NewFakeBackend(t)
	testutil.SeedReference(fb, testutil.DefaultReference())
	client := fb.Client(t)
	store := testutil.NewMemDrafts()
	h := drafts.NewHandler(
		store,
		refdata.NewLoader(client, nil, logger),
		publish.NewSequencer(client, logger),
		testutil.NewSessionManager(t),
		uierrors.NewErrorLogger(logger),
		logger,
	)
	return &env{t: t, h: h, fb: fb, drafts: store, user: testutil.LeadUser()}
}

// stage stores a draft with weeks weeks, each holding activitiesPerWeek
// valid activities.
func (e *env) stage(weeks, activitiesPerWeek int) {
	d := staging.New(models.Workbook{
		CourseName:         "Biology 101",
		StartDate:          models.MustParseDate("2025-01-06"),
		CourseLeadID:       e.user.ID,
		LearningPlatformID: "p-moodle",
	}, weeks)
	for wk := 1; wk <= weeks; wk++ {
		for i := 0; i < activitiesPerWeek; i++ {
			a := models.Activity{
				Name:                "Activity",
				TimeEstimateMinutes: 30,
				LocationID:          "loc-online",
				LearningActivityID:  "la-quiz",
				LearningTypeID:      "lt-acq",
				TaskStatusID:        "ts-todo",
			}.WithStaff("u-staff")
			if _, err := d.AddActivity(wk, a); err != nil {
				e.t.Fatalf("AddActivity: %v", err)
			}
		}
	}
	d.AddContributor("u-staff")
	e.drafts.Put(draftID, e.user.ID, d)
}

func (e *env) draft() *staging.Draft {
	e.t.Helper()
	d, err := e.drafts.Get(context.Background(), draftID, e.user.ID)
	if err != nil {
		e.t.Fatalf("draft: %v", err)
	}
	return d
}

func (e *env) do(fn http.HandlerFunc, method, target string, form url.Values, params map[string]string) *httptest.ResponseRecorder {
	e.t.Helper()
	var req *http.Request
	if method == http.MethodPost {
		req = testutil.NewFormRequest(target, form.Encode(), e.user)
	} else {
		req = testutil.NewAuthenticatedRequest(method, target, e.user)
	}
	req = testutil.WithDraftID(e.t, e.h.SessionMgr, req, draftID)
	if params != nil {
		req = testutil.WithChiURLParams(req, params)
	}
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		fn(rec, req)
	}()
	return rec
}

func TestServeEdit_NoDraftRedirectsToCreate(t *testing.T) {
	e := newEnv(t)

	rec := e.do(e.h.ServeEdit, http.MethodGet, "/drafts/edit", nil, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/workbooks/new" {
		t.Errorf("Location: got %q, want /workbooks/new", loc)
	}
}

func TestServeEdit_OtherUsersDraftIsNotVisible(t *testing.T) {
	e := newEnv(t)
	e.stage(1, 0)
	e.user = testutil.StaffUser()

	rec := e.do(e.h.ServeEdit, http.MethodGet, "/drafts/edit", nil, nil)

	if loc := rec.Header().Get("Location"); loc != "/workbooks/new" {
		t.Errorf("Location: got %q, want /workbooks/new", loc)
	}
}

func TestHandleAddWeek(t *testing.T) {
	e := newEnv(t)
	e.stage(2, 0)

	rec := e.do(e.h.HandleAddWeek, http.MethodPost, "/drafts/edit/weeks/add", url.Values{}, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/drafts/edit#week-3" {
		t.Errorf("Location: got %q", loc)
	}
	d := e.draft()
	if d.WeekCount() != 3 {
		t.Fatalf("weeks: got %d, want 3", d.WeekCount())
	}
	if got := d.Weeks[2].StartDate.String(); got != "2025-01-20" {
		t.Errorf("week 3 start: got %s, want 2025-01-20", got)
	}
	if got := d.Workbook.EndDate.String(); got != "2025-01-26" {
		t.Errorf("workbook end: got %s, want 2025-01-26", got)
	}
}

func TestHandleDeleteWeek_Renumbers(t *testing.T) {
	e := newEnv(t)
	e.stage(3, 1)

	e.do(e.h.HandleDeleteWeek, http.MethodPost, "/drafts/edit/weeks/1/delete", url.Values{}, map[string]string{"week": "1"})

	d := e.draft()
	if d.WeekCount() != 2 {
		t.Fatalf("weeks: got %d, want 2", d.WeekCount())
	}
	for i, w := range d.Weeks {
		if w.Number != i+1 {
			t.Errorf("week %d numbered %d", i+1, w.Number)
		}
		for _, a := range w.Activities {
			if a.WeekNumber != w.Number {
				t.Errorf("activity in week %d has week number %d", w.Number, a.WeekNumber)
			}
		}
	}
	if got := d.Weeks[0].StartDate.String(); got != "2025-01-06" {
		t.Errorf("first week start: got %s, want 2025-01-06", got)
	}
}

func TestHandleAddActivity(t *testing.T) {
	valid := url.Values{
		"name":                 {"Quiz"},
		"time":                 {"00:45"},
		"location_id":          {"loc-online"},
		"learning_activity_id": {"la-quiz"},
		"learning_type_id":     {"lt-prac"},
		"task_status_id":       {"ts-todo"},
		"staff_id":             {"u-staff"},
	}

	t.Run("valid", func(t *testing.T) {
		e := newEnv(t)
		e.stage(2, 0)

		rec := e.do(e.h.HandleAddActivity, http.MethodPost, "/drafts/edit/weeks/2/activities", valid, map[string]string{"week": "2"})

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
		}
		acts := e.draft().Weeks[1].Activities
		if len(acts) != 1 || acts[0].TimeEstimateMinutes != 45 || acts[0].WeekNumber != 2 {
			t.Errorf("week 2 activities: %+v", acts)
		}
	})

	t.Run("missing staff", func(t *testing.T) {
		e := newEnv(t)
		e.stage(2, 0)
		form := url.Values{}
		for k, v := range valid {
			form[k] = v
		}
		form.Del("staff_id")

		rec := e.do(e.h.HandleAddActivity, http.MethodPost, "/drafts/edit/weeks/2/activities", form, map[string]string{"week": "2"})

		if rec.Code == http.StatusSeeOther {
			t.Fatal("invalid activity was staged")
		}
		if n := len(e.draft().Weeks[1].Activities); n != 0 {
			t.Errorf("week 2 activities: got %d, want 0", n)
		}
	})
}

func TestHandleDeleteActivity_Positional(t *testing.T) {
	e := newEnv(t)
	e.stage(1, 3)

	e.do(e.h.HandleDeleteActivity, http.MethodPost, "/drafts/edit/weeks/1/activities/1/delete", url.Values{},
		map[string]string{"week": "1", "index": "1"})

	if n := len(e.draft().Weeks[0].Activities); n != 2 {
		t.Errorf("activities: got %d, want 2", n)
	}
}

func TestHandleStartDate_RederivesWeeks(t *testing.T) {
	e := newEnv(t)
	e.stage(2, 0)

	e.do(e.h.HandleStartDate, http.MethodPost, "/drafts/edit/start-date", url.Values{"start_date": {"2025-02-03"}}, nil)

	d := e.draft()
	if got := d.Weeks[1].StartDate.String(); got != "2025-02-10" {
		t.Errorf("week 2 start: got %s, want 2025-02-10", got)
	}
	if got := d.Workbook.EndDate.String(); got != "2025-02-16" {
		t.Errorf("workbook end: got %s, want 2025-02-16", got)
	}
}

func TestHandlePlatform_KeepsActivities(t *testing.T) {
	e := newEnv(t)
	e.stage(1, 2)

	e.do(e.h.HandlePlatform, http.MethodPost, "/drafts/edit/platform", url.Values{"learning_platform_id": {"p-canvas"}}, nil)

	d := e.draft()
	if d.Workbook.LearningPlatformID != "p-canvas" {
		t.Errorf("platform: got %q", d.Workbook.LearningPlatformID)
	}
	if n := len(d.Weeks[0].Activities); n != 2 {
		t.Errorf("activities: got %d, want 2", n)
	}
}

func TestHandlePublish_InvalidMakesNoBackendCalls(t *testing.T) {
	e := newEnv(t)
	e.stage(2, 0) // weeks without activities

	rec := e.do(e.h.HandlePublish, http.MethodPost, "/drafts/edit/publish", url.Values{}, nil)

	if rec.Code == http.StatusSeeOther {
		t.Fatal("invalid draft was published")
	}
	if n := len(e.fb.CallsTo(http.MethodPost, "/workbooks/")); n != 0 {
		t.Errorf("workbook POSTs: got %d, want 0", n)
	}
}

func seedPublishRoutes(fb *testutil.FakeBackend, weekStatus int) {
	fb.JSON(http.MethodPost, "/workbooks/", http.StatusOK, map[string]string{"id": "wb-new"})
	fb.Handle(http.MethodPost, "/weeks/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(weekStatus)
		if weekStatus >= 400 {
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Week overlaps another week"})
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})
	n := 0
	fb.Handle(http.MethodPost, "/activities/", func(w http.ResponseWriter, r *http.Request) {
		n++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": fmt.Sprintf("act-%d", n)})
	})
	fb.JSON(http.MethodPost, "/activity-staff/", http.StatusOK, map[string]string{})
	fb.JSON(http.MethodPost, "/workbook-contributors/", http.StatusOK, map[string]string{})
}

func TestHandlePublish_Success(t *testing.T) {
	e := newEnv(t)
	e.stage(2, 2)
	seedPublishRoutes(e.fb, http.StatusOK)

	rec := e.do(e.h.HandlePublish, http.MethodPost, "/drafts/edit/publish", url.Values{}, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/workbooks/wb-new" {
		t.Errorf("Location: got %q, want /workbooks/wb-new", loc)
	}

	var order []string
	for _, c := range e.fb.Calls() {
		if c.Method == http.MethodPost {
			order = append(order, c.Path)
		}
	}
	want := []string{
		"/workbooks/",
		"/weeks/", "/activities/", "/activity-staff/", "/activities/", "/activity-staff/",
		"/weeks/", "/activities/", "/activity-staff/", "/activities/", "/activity-staff/",
		"/workbook-contributors/",
	}
	if len(order) != len(want) {
		t.Fatalf("POST order:\n got %v\nwant %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("POST %d: got %s, want %s (full %v)", i, order[i], want[i], order)
		}
	}

	if e.drafts.Len() != 0 {
		t.Errorf("draft kept after publish")
	}
}

func TestHandlePublish_WeekFailureStopsBeforeActivities(t *testing.T) {
	e := newEnv(t)
	e.stage(2, 1)
	seedPublishRoutes(e.fb, http.StatusUnprocessableEntity)

	rec := e.do(e.h.HandlePublish, http.MethodPost, "/drafts/edit/publish", url.Values{}, nil)

	if rec.Code == http.StatusSeeOther {
		t.Fatal("failed publish redirected")
	}
	if n := len(e.fb.CallsTo(http.MethodPost, "/activities/")); n != 0 {
		t.Errorf("activity POSTs after week failure: got %d, want 0", n)
	}
	if n := len(e.fb.CallsTo(http.MethodPost, "/weeks/")); n != 1 {
		t.Errorf("week POSTs: got %d, want 1", n)
	}
	if e.drafts.Len() != 1 {
		t.Error("draft was dropped after a failed publish")
	}
}

func TestHandleDiscard(t *testing.T) {
	e := newEnv(t)
	e.stage(1, 0)

	rec := e.do(e.h.HandleDiscard, http.MethodPost, "/drafts/edit/discard", url.Values{}, nil)

	if loc := rec.Header().Get("Location"); loc != "/workbooks" {
		t.Errorf("Location: got %q, want /workbooks", loc)
	}
	if e.drafts.Len() != 0 {
		t.Error("draft kept after discard")
	}
}

func TestHandleMetadata_SchoolsUnavailableLeavesDraft(t *testing.T) {
	e := newEnv(t)
	e.stage(1, 1)
	e.fb.JSON(http.MethodGet, "/schools/", http.StatusInternalServerError, map[string]string{"detail": "boom"})

	form := url.Values{"course_name": {"Chemistry"}, "area_id": {"a-sci"}, "school_id": {"s-bio"}}
	e.do(e.h.HandleMetadata, http.MethodPost, "/drafts/edit/metadata", form, nil)

	if wb := e.draft().Workbook; wb.CourseName != "Biology 101" || wb.SchoolID != "" {
		t.Errorf("draft changed without a school check: name %q, school %q", wb.CourseName, wb.SchoolID)
	}
}
