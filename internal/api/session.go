package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"shelternav/pkg/session"
)

type SessionHandler struct {
	mgr *session.Manager
}

func NewSessionHandler(mgr *session.Manager) *SessionHandler {
	return &SessionHandler{mgr: mgr}
}

type SessionStatusResponse struct {
	State      string `json:"state"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	RegionCode string `json:"region_code,omitempty"`
}

func (h *SessionHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	vm := h.mgr.Snapshot()
	resp := SessionStatusResponse{
		State:      vm.State,
		Status:     vm.Status,
		Error:      vm.Error,
		RegionCode: vm.RegionCode,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode session response", "error", err)
	}
}

// HandleRetryOrientation re-requests the heading permission. Only
// valid while the session is waiting on it.
func (h *SessionHandler) HandleRetryOrientation(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.RetryOrientation(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	h.HandleStatus(w, r)
}
