package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"shelternav/pkg/session"
)

const wsWriteTimeout = 10 * time.Second

type ViewHandler struct {
	mgr      *session.Manager
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewViewHandler(mgr *session.Manager) *ViewHandler {
	return &ViewHandler{
		mgr: mgr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		logger: slog.With("component", "api"),
	}
}

// HandleView returns the current view model as a one-off snapshot.
func (h *ViewHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.mgr.Snapshot()); err != nil {
		h.logger.Error("Failed to encode view response", "error", err)
	}
}

// HandleWS upgrades to a websocket and pushes a view model frame on
// every session change, starting with the current snapshot.
func (h *ViewHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	id, updates, cancel := h.mgr.Subscribe()
	defer cancel()
	h.logger.Debug("view subscriber connected", "id", id, "remote", r.RemoteAddr)

	// Reader loop: we ignore client frames but need to notice closes.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		_ = conn.Close()
		h.logger.Debug("view subscriber disconnected", "id", id)
	}()

	if err := h.writeFrame(conn, h.mgr.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case vm := <-updates:
			if err := h.writeFrame(conn, vm); err != nil {
				return
			}
		}
	}
}

func (h *ViewHandler) writeFrame(conn *websocket.Conn, vm session.ViewModel) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(vm); err != nil {
		h.logger.Debug("view push failed", "error", err)
		return err
	}
	return nil
}
