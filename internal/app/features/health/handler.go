package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger is anything that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Drafts  Pinger
	Backend Pinger
	Log     *zap.Logger
}

// NewHandler constructs a health Handler. Either pinger may be nil, in
// which case that check is reported as "not configured".
func NewHandler(drafts, backend Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Drafts:  drafts,
		Backend: backend,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Backend  string `json:"backend"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "backend":"reachable" }
//
// When either dependency fails: 503 and
//
//	{ "status":"error", "database":"…", "backend":"…", "message":"…", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Database: "not configured",
		Backend:  "not configured",
	}
	status := http.StatusOK

	if h.Drafts != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		err := h.Drafts.Ping(ctx)
		cancel()
		if err != nil {
			h.Log.Error("health-check: draft store ping failed", zap.Error(err))
			status = http.StatusServiceUnavailable
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
		} else {
			resp.Database = "connected"
		}
	}

	if h.Backend != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		err := h.Backend.Ping(ctx)
		cancel()
		if err != nil {
			h.Log.Error("health-check: backend unreachable", zap.Error(err))
			status = http.StatusServiceUnavailable
			resp.Status = "error"
			resp.Backend = "unreachable"
			if resp.Message == "" {
				resp.Message = "Backend unavailable"
				resp.Error = err.Error()
			}
		} else {
			resp.Backend = "reachable"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
