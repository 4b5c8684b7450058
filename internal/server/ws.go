package server

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"topictrail/internal/explorer"
	"topictrail/internal/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// viewMessage is the outgoing WebSocket message format.
type viewMessage struct {
	Type string        `json:"type"` // always "view"
	View explorer.View `json:"view"`
}

// wsHub fans explorer view updates out to every connected client of a
// session.
type wsHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

func newWSHub() *wsHub {
	return &wsHub{conns: make(map[*websocket.Conn]bool)}
}

// addAndSend registers a client and sends it the current snapshot.
// Both happen under the hub lock so the initial write cannot interleave
// with a broadcast on the same connection.
func (h *wsHub) addAndSend(conn *websocket.Conn, v explorer.View) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := conn.WriteJSON(viewMessage{Type: "view", View: v}); err != nil {
		return err
	}
	h.conns[conn] = true
	return nil
}

// clients reports how many connections are registered. The idle sweep
// uses it to keep sessions with live listeners.
func (h *wsHub) clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *wsHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// broadcast sends a view snapshot to every client, dropping connections
// that fail to write.
func (h *wsHub) broadcast(v explorer.View) {
	msg := viewMessage{Type: "view", View: v}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(msg); err != nil {
			logger.Debugf("websocket write failed, dropping client: %v", err)
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

func (h *wsHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.Close()
		delete(h.conns, conn)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("websocket upgrade: %v", err)
		return
	}
	// Late joiners get the current state immediately so they are not
	// blank until the next navigation.
	if err := sess.hub.addAndSend(conn, sess.explorer.View()); err != nil {
		conn.Close()
		return
	}

	// Drain reads to observe the close handshake; clients only listen.
	go func() {
		defer sess.hub.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					logger.Debugf("websocket read: %v", err)
				}
				return
			}
		}
	}()
}
