package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

func dialReload(t *testing.T, addr string, header http.Header) *websocket.Conn {
	t.Helper()

	ws, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func readEvent(t *testing.T, ws *websocket.Conn) ports.UpdateEvent {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	var event ports.UpdateEvent
	require.NoError(t, ws.ReadJSON(&event))
	return event
}

func TestWebSocketReload(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, server.Start(ctx))
	defer func() { _ = server.Stop(ctx) }()

	server.SetPages([]entities.PageEntry{{LessonName: "intro", FileName: "intro.html"}})

	clients := make([]*websocket.Conn, 3)
	for i := range clients {
		clients[i] = dialReload(t, server.Addr(), nil)

		event := readEvent(t, clients[i])
		assert.Equal(t, ports.EventTypeConnected, event.Type)
		data, ok := event.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(1), data["pages"])
	}

	server.NotifyReload([]entities.PageEntry{
		{LessonName: "intro", FileName: "intro.html"},
		{LessonName: "next", FileName: "next.html"},
	})

	for _, ws := range clients {
		event := readEvent(t, ws)
		assert.Equal(t, ports.EventTypeReload, event.Type)
	}
	assert.Len(t, server.Pages(), 2)

	server.NotifyError(errors.New("lesson broken"))
	for _, ws := range clients {
		event := readEvent(t, ws)
		assert.Equal(t, ports.EventTypeError, event.Type)
		data, ok := event.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "lesson broken", data["message"])
	}
}

func TestWebSocketClosedOnStop(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, server.Start(ctx))

	ws := dialReload(t, server.Addr(), nil)
	readEvent(t, ws)

	require.NoError(t, server.Stop(ctx))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := ws.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketOrigin(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, server.Start(ctx))
	defer func() { _ = server.Stop(ctx) }()

	addr := server.Addr()

	t.Run("same origin", func(t *testing.T) {
		ws := dialReload(t, addr, http.Header{"Origin": []string{"http://" + addr}})
		assert.Equal(t, ports.EventTypeConnected, readEvent(t, ws).Type)
	})

	t.Run("loopback page", func(t *testing.T) {
		ws := dialReload(t, addr, http.Header{"Origin": []string{"http://localhost:3000"}})
		assert.Equal(t, ports.EventTypeConnected, readEvent(t, ws).Type)
	})

	t.Run("foreign origin rejected", func(t *testing.T) {
		_, resp, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", http.Header{"Origin": []string{"http://evil.example"}})
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestIsValidOrigin(t *testing.T) {
	server, _ := newTestServer(t)
	server.config.CORSOrigins = "https://slides.example.org"

	tests := []struct {
		origin string
		valid  bool
	}{
		{"", true},
		{"http://localhost:8000", true},
		{"http://127.0.0.1:9000", true},
		{"http://[::1]:8000", true},
		{"https://slides.example.org", true},
		{"https://other.example.org", false},
		{"://bad", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			req, err := http.NewRequest("GET", "http://lessons.local/ws", nil)
			require.NoError(t, err)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.valid, server.isValidOrigin(req))
		})
	}

	t.Run("wildcard", func(t *testing.T) {
		server.config.CORSOrigins = "*"
		req, _ := http.NewRequest("GET", "http://lessons.local/ws", nil)
		req.Header.Set("Origin", "https://anything.example")
		assert.True(t, server.isValidOrigin(req))
	})
}

func TestWebSocketRouteRequiresUpgrade(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()
	require.NoError(t, server.Start(ctx))
	defer func() { _ = server.Stop(ctx) }()

	resp, err := http.Get("http://" + server.Addr() + "/ws")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, strings.Contains(resp.Header.Get("Content-Type"), "html"))
}
