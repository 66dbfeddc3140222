package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// Call is one request received by a FakeBackend.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Cookie string
}

// FakeBackend is an httptest server standing in for the workbook API. It
// serves routes registered with Handle or JSON under /api and records every
// request. Unregistered routes answer 404 with a FastAPI-style detail.
type FakeBackend struct {
	*httptest.Server

	mu     sync.Mutex
	calls  []Call
	routes map[string]http.HandlerFunc
}

// NewFakeBackend starts a FakeBackend that is closed when t ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{routes: map[string]http.HandlerFunc{}}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := r.URL.Path
	if len(path) >= 4 && path[:4] == "/api" {
		path = path[4:]
	}

	f.mu.Lock()
	f.calls = append(f.calls, Call{
		Method: r.Method,
		Path:   path,
		Query:  r.URL.RawQuery,
		Body:   body,
		Cookie: r.Header.Get("Cookie"),
	})
	h := f.routes[r.Method+" "+path]
	f.mu.Unlock()

	if h == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
		return
	}
	h(w, r)
}

// Handle registers h for method and path (path excludes the /api prefix
// and the query string).
func (f *FakeBackend) Handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

// JSON registers a route that always answers status with body encoded as
// JSON.
func (f *FakeBackend) JSON(method, path string, status int, body any) {
	f.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	})
}

// Calls returns a copy of the recorded requests.
func (f *FakeBackend) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded requests for one method and path.
func (f *FakeBackend) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// Client returns a backend client pointed at the fake.
func (f *FakeBackend) Client(t *testing.T) *backend.Client {
	t.Helper()
	c, err := backend.New(f.URL+"/api", 5*time.Second, zap.NewNop())
	if err != nil {
		t.Fatalf("backend.New: %v", err)
	}
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
