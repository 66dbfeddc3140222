package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"go.uber.org/zap"
)

func newClient(t *testing.T, h http.Handler) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := backend.New(srv.URL+"/api", 2*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew_RejectsNonHTTPURL(t *testing.T) {
	if _, err := backend.New("ftp://example.com", 0, nil); err == nil {
		t.Error("expected error for ftp scheme")
	}
}

func TestGetSession_SendsCredentials(t *testing.T) {
	var gotCookie, gotPath string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"user_id": "u-1"})
	}))

	ctx := backend.WithCredentials(context.Background(), "session=abc")
	info, err := c.GetSession(ctx)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if info.UserID != "u-1" {
		t.Errorf("UserID: got %q, want %q", info.UserID, "u-1")
	}
	if gotCookie != "session=abc" {
		t.Errorf("Cookie: got %q, want %q", gotCookie, "session=abc")
	}
	if gotPath != "/api/session/" {
		t.Errorf("path: got %q, want %q", gotPath, "/api/session/")
	}
}

func TestCreateSession_ReturnsIssuedCookie(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/session/Jane Doe" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "tok-123", Path: "/"})
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "session_id": "tok-123"})
	}))

	cookie, err := c.CreateSession(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if cookie != "session=tok-123" {
		t.Errorf("cookie: got %q, want %q", cookie, "session=tok-123")
	}
}

func TestCreateSession_UnknownUser(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":"User with name nobody does not exist."}`)
	}))

	_, err := c.CreateSession(context.Background(), "nobody")
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if !apiErr.IsValidation() {
		t.Errorf("expected 422, got %d", apiErr.StatusCode)
	}
	if apiErr.Detail != "User with name nobody does not exist." {
		t.Errorf("Detail: got %q", apiErr.Detail)
	}
}

func TestAPIError_ListDetail(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"loc":["body","course_name"],"msg":"field required","type":"missing"},{"loc":["body"],"msg":"bad body"}]}`)
	}))

	_, err := c.CreateWorkbook(context.Background(), models.Workbook{})
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	want := "course_name: field required; bad body"
	if apiErr.Detail != want {
		t.Errorf("Detail: got %q, want %q", apiErr.Detail, want)
	}
}

func TestIsUnauthenticated(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"detail":"invalid session provided"}`)
	}))

	_, err := c.GetSession(context.Background())
	if !backend.IsUnauthenticated(err) {
		t.Errorf("expected unauthenticated, got %v", err)
	}
	if backend.IsUnauthenticated(errors.New("dial tcp: refused")) {
		t.Error("transport errors are not unauthenticated")
	}
}

func TestLearningActivities_ScopesByPlatform(t *testing.T) {
	var gotQuery string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("learning_platform_id")
		_, _ = io.WriteString(w, `[{"id":"la-1","name":"Quiz","learning_platform_id":"p-1"}]`)
	}))

	acts, err := c.LearningActivities(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("LearningActivities failed: %v", err)
	}
	if gotQuery != "p-1" {
		t.Errorf("learning_platform_id: got %q, want %q", gotQuery, "p-1")
	}
	if len(acts) != 1 || acts[0].Name != "Quiz" {
		t.Errorf("unexpected activities: %+v", acts)
	}
}

func TestCreateWorkbook_SendsDates(t *testing.T) {
	var body map[string]any
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = io.WriteString(w, `{"id":"wb-1","course_name":"Maths","start_date":"2025-01-06","end_date":"2025-01-19","learning_platform_id":"p-1"}`)
	}))

	wb, err := c.CreateWorkbook(context.Background(), models.Workbook{
		CourseName:         "Maths",
		StartDate:          models.MustParseDate("2025-01-06"),
		EndDate:            models.MustParseDate("2025-01-19"),
		LearningPlatformID: "p-1",
	})
	if err != nil {
		t.Fatalf("CreateWorkbook failed: %v", err)
	}
	if wb.ID != "wb-1" {
		t.Errorf("ID: got %q, want %q", wb.ID, "wb-1")
	}
	if body["start_date"] != "2025-01-06" || body["end_date"] != "2025-01-19" {
		t.Errorf("dates not sent as calendar dates: %v", body)
	}
	if _, ok := body["area_id"]; ok {
		t.Error("empty area_id should be omitted")
	}
}

func TestDeleteWeek_SendsKeyInBody(t *testing.T) {
	var key models.WeekKey
	var method string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		_ = json.NewDecoder(r.Body).Decode(&key)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))

	if err := c.DeleteWeek(context.Background(), "wb-1", 2); err != nil {
		t.Fatalf("DeleteWeek failed: %v", err)
	}
	if method != http.MethodDelete {
		t.Errorf("method: got %q", method)
	}
	if key.WorkbookID != "wb-1" || key.Number != 2 {
		t.Errorf("key: got %+v", key)
	}
}

func TestSearchWorkbooks_OnlySetFilters(t *testing.T) {
	var rawQuery string
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	}))

	_, err := c.SearchWorkbooks(context.Background(), models.WorkbookSearch{
		Name:        "bio",
		StartsAfter: models.MustParseDate("2025-01-01"),
	})
	if err != nil {
		t.Fatalf("SearchWorkbooks failed: %v", err)
	}
	if rawQuery != "name=bio&starts_after=2025-01-01" {
		t.Errorf("query: got %q", rawQuery)
	}
}
