package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fredcamaral/slidex/internal/domain/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// clientBuffer is how many events a slow tab may fall behind before it is dropped
	clientBuffer = 16
)

// reloadClient is one browser tab listening for rebuild events
type reloadClient struct {
	id     string
	conn   *websocket.Conn
	send   chan ports.UpdateEvent
	hub    *Hub
	logger ports.Logger
}

// handleWebSocket upgrades the request and joins the client to the hub.
// The first event a client sees is always "connected".
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.isValidOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("WebSocket upgrade failed: %v", err)
		return
	}

	client := &reloadClient{
		id:     uuid.New().String(),
		conn:   conn,
		send:   make(chan ports.UpdateEvent, clientBuffer),
		hub:    s.hub,
		logger: s.logger,
	}

	client.send <- ports.UpdateEvent{
		Type:      ports.EventTypeConnected,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"client": client.id,
			"pages":  len(s.Pages()),
		},
	}

	if s.hub.Join(client.id, client.send) {
		s.logger.Debug("Live reload client %s connected", client.id)
	}

	go client.writeLoop()
	go client.readLoop()
}

// readLoop keeps the read deadline moving on pongs and notices when the tab goes away
func (c *reloadClient) readLoop() {
	defer func() {
		c.hub.Leave(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("Live reload client %s: %v", c.id, err)
			}
			return
		}
	}
}

// writeLoop forwards hub events and pings until the send channel is closed
func (c *reloadClient) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// isValidOrigin accepts pages served by this server, loopback pages and configured origins
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		s.logger.Warn("WebSocket connection rejected: invalid origin %q", origin)
		return false
	}

	if strings.EqualFold(u.Host, r.Host) {
		return true
	}

	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}

	for _, allowed := range s.config.GetCORSOrigins() {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}

	s.logger.Warn("WebSocket connection rejected: origin %s not allowed", origin)
	return false
}
