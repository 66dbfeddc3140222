package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dalemusser/workbookhub/internal/app/store/drafts"
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/staging"
)

// MemDrafts is an in-memory draft store with the same ownership rules as
// drafts.Store. Drafts are copied through JSON on the way in and out.
type MemDrafts struct {
	mu     sync.Mutex
	seq    int
	owners map[string]string
	data   map[string][]byte

	// Deleted records every id passed to Delete.
	Deleted []string
}

// NewMemDrafts returns an empty MemDrafts.
func NewMemDrafts() *MemDrafts {
	return &MemDrafts{owners: map[string]string{}, data: map[string][]byte{}}
}

func (m *MemDrafts) Create(ctx context.Context, userID string, d *staging.Draft) (string, error) {
	m.mu.Lock()
	m.seq++
	id := fmt.Sprintf("draft-%d", m.seq)
	m.mu.Unlock()
	return id, m.Save(ctx, id, userID, d)
}

func (m *MemDrafts) Save(_ context.Context, id, userID string, d *staging.Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if owner, ok := m.owners[id]; ok && owner != userID {
		return drafts.ErrNotFound
	}
	m.owners[id] = userID
	m.data[id] = b
	return nil
}

func (m *MemDrafts) Get(_ context.Context, id, userID string) (*staging.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owners[id] != userID || m.data[id] == nil {
		return nil, drafts.ErrNotFound
	}
	var d staging.Draft
	if err := json.Unmarshal(m.data[id], &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (m *MemDrafts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, id)
	delete(m.owners, id)
	delete(m.data, id)
	return nil
}

// Put stores d under id for userID, for tests that start from a staged draft.
func (m *MemDrafts) Put(id, userID string, d *staging.Draft) {
	if err := m.Save(context.Background(), id, userID, d); err != nil {
		panic(err)
	}
}

// Len returns the number of stored drafts.
func (m *MemDrafts) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// WithDraftID stages id in r's session cookie, the way the create screen
// does after staging a draft.
func WithDraftID(t *testing.T, sm *auth.SessionManager, r *http.Request, id string) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	if err := sm.SetDraftID(rec, httptest.NewRequest(http.MethodGet, "/", nil), id); err != nil {
		t.Fatalf("SetDraftID: %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}
