package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ZQisAmalou/v2x-log-server/common/httputil"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleWebSocket streams change-watcher notifications to the client as
// JSON. Each connection holds its own subscription; closing the socket
// releases it.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.watcher == nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, "change watching disabled")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub := s.watcher.Subscribe()
	defer sub.Close()

	// Read pump: detect client disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case n, ok := <-sub.C:
			if !ok {
				return
			}
			if err := conn.WriteJSON(n); err != nil {
				s.logger.WarnContext(r.Context(), "websocket write failed", "error", err)
				return
			}
		}
	}
}
