package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// FeaturesHandler streams per-frame feature vectors via WebSocket.
type FeaturesHandler struct {
	hub    *Hub
	logger *zap.SugaredLogger
}

// NewFeaturesHandler creates a new FeaturesHandler reading from hub.
func NewFeaturesHandler(hub *Hub, logger *zap.SugaredLogger) *FeaturesHandler {
	return &FeaturesHandler{hub: hub, logger: logger}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *FeaturesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debugw("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	c := h.hub.register()
	defer h.hub.unregister(c)

	// Clients never send anything we use; reading detects disconnects.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debugw("websocket write failed", "error", err)
				return
			}
		}
	}
}
