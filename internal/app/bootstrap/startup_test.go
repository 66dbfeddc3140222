package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		BackendBaseURL: "http://localhost:8000/api",
		MongoURI:       "mongodb://localhost:27017",
		MongoDatabase:  "workbookhub",
		SessionKey:     "dev-only-change-me-please-0123456789ABCDEF",
		DraftTTL:       72 * time.Hour,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"defaults in dev", "dev", func(*AppConfig) {}, false},
		{"missing backend url", "dev", func(c *AppConfig) { c.BackendBaseURL = "" }, true},
		{"non-http backend url", "dev", func(c *AppConfig) { c.BackendBaseURL = "ftp://example.com/api" }, true},
		{"missing database", "dev", func(c *AppConfig) { c.MongoDatabase = "" }, true},
		{"zero draft ttl", "dev", func(c *AppConfig) { c.DraftTTL = 0 }, true},
		{"dev session key in prod", "prod", func(*AppConfig) {}, true},
		{"short session key in prod", "prod", func(c *AppConfig) { c.SessionKey = "too-short" }, true},
		{"strong session key in prod", "prod", func(c *AppConfig) {
			c.SessionKey = "a7f3c9e1b5d2486f90aa17c3e4b8d6f2"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAppConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(&config.CoreConfig{Env: tt.env}, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnsureSchema_NoDrafts(t *testing.T) {
	if err := EnsureSchema(context.Background(), &config.CoreConfig{}, validAppConfig(), DBDeps{}, testLogger()); err != nil {
		t.Fatalf("EnsureSchema with no draft store: %v", err)
	}
}

func TestShutdown_EmptyDeps(t *testing.T) {
	if err := Shutdown(context.Background(), &config.CoreConfig{}, validAppConfig(), DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Shutdown with no connections: %v", err)
	}
}

func TestCSRFMiddleware(t *testing.T) {
	forbidden := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cfg := validAppConfig()
	cfg.CSRFKey = "test-csrf-key"

	var h http.Handler = ok
	chain := csrfMiddleware(cfg, false, forbidden, testLogger())
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodHead, http.StatusOK},
		{http.MethodPost, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/workbooks/wb-1/delete", nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("%s status = %d, want %d", tt.method, rec.Code, tt.want)
			}
		})
	}
}
