package diagnostics

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// PropertyEvent is one property change as streamed over /watch. Value is
// the property's value read at dispatch time, so consumers see the
// settled state the listeners saw.
type PropertyEvent struct {
	Seq       uint64 `json:"seq"`
	Component uint64 `json:"component"`
	Kind      string `json:"kind"`
	Property  string `json:"property"`
	Value     any    `json:"value"`
}

const (
	watchSendBuffer   = 64
	watchWriteTimeout = 5 * time.Second
)

// watchHub fans property events out to connected websocket clients.
// Broadcasts arrive on the goroutine that owns the scene; registration
// comes from handler goroutines, so the client set is guarded.
type watchHub struct {
	mu      sync.Mutex
	clients map[*watchClient]struct{}
	seq     uint64
}

type watchClient struct {
	conn *websocket.Conn
	send chan PropertyEvent
}

func newWatchHub() *watchHub {
	return &watchHub{clients: make(map[*watchClient]struct{})}
}

func (h *watchHub) register(c *watchClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// drop removes c and closes its send channel. It reports whether c was
// still registered, so the reader and writer pumps can race to drop a
// failed client without closing the channel twice. The close happens
// under the same lock broadcast sends under, which is what makes
// send-after-close impossible.
func (h *watchHub) drop(c *watchClient) bool {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	return ok
}

// broadcast queues evt for every connected client. A client whose buffer
// is full misses the event rather than stalling the dispatch pass.
func (h *watchHub) broadcast(evt PropertyEvent) {
	h.mu.Lock()
	h.seq++
	evt.Seq = h.seq
	for c := range h.clients {
		select {
		case c.send <- evt:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *watchHub) clientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *watchHub) closeAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// handleWatch upgrades the connection and streams property events until
// the client goes away.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("watch upgrade failed", "error", err)
		return
	}

	client := &watchClient{conn: conn, send: make(chan PropertyEvent, watchSendBuffer)}
	s.hub.register(client)
	s.metrics.watchClients.Inc()
	s.logger.Info("watch client connected", "remote", conn.RemoteAddr().String())

	go s.watchWriter(client)
	s.watchReader(client)
}

// watchWriter drains the client's queue onto the wire. A closed send
// channel means the hub dropped the client; the writer then says goodbye
// and hangs up.
func (s *Server) watchWriter(c *watchClient) {
	defer c.conn.Close()
	for evt := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
		if err := c.conn.WriteJSON(evt); err != nil {
			s.hub.drop(c)
			return
		}
	}
	deadline := time.Now().Add(watchWriteTimeout)
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
}

// watchReader discards inbound messages and waits for the connection to
// end. The stream is one-way; reading is only how we learn the client
// left.
func (s *Server) watchReader(c *watchClient) {
	defer func() {
		s.hub.drop(c)
		s.metrics.watchClients.Dec()
		s.logger.Info("watch client disconnected", "remote", c.conn.RemoteAddr().String())
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure) {
				s.logger.Error("watch read error", "error", err)
			}
			return
		}
	}
}
