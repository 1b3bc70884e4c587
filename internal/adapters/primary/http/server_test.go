package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidex/internal/domain/entities"
)

const samplePage = `<html>
<body>
<div class="slides">
<section>hi</section>
</div>
</BODY>
</html>`

// newTestServer creates a server over a temporary reveal directory holding one page
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "reveal")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "intro.html"), []byte(samplePage), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<ul></ul>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "theme.css"), []byte("body{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "secret.txt"), []byte("secret"), 0644))

	config := &entities.Config{
		BaseDirectory:   base,
		RevealDirectory: "reveal",
		ServeHost:       "127.0.0.1",
		ServePort:       0,
	}

	return NewServer(config, &captureLogger{}), root
}

func TestInjectReloadScript(t *testing.T) {
	t.Run("before last closing body tag", func(t *testing.T) {
		page := []byte("<body>a</body><p></body >")
		out := string(InjectReloadScript(page))

		assert.True(t, strings.HasSuffix(out, reloadScript+"</body >"))
		assert.Equal(t, 1, strings.Count(out, "<script>"))
		assert.True(t, strings.HasPrefix(out, "<body>a</body><p>"))
	})

	t.Run("case-insensitive tag", func(t *testing.T) {
		out := string(InjectReloadScript([]byte(samplePage)))
		assert.Contains(t, out, reloadScript+"</BODY>")
	})

	t.Run("appended when there is no body tag", func(t *testing.T) {
		out := string(InjectReloadScript([]byte("<p>fragment</p>")))
		assert.Equal(t, "<p>fragment</p>"+reloadScript, out)
	})

	t.Run("input untouched", func(t *testing.T) {
		page := []byte("<body></body>")
		_ = InjectReloadScript(page)
		assert.Equal(t, "<body></body>", string(page))
	})
}

func TestServer_StaticFiles(t *testing.T) {
	server, root := newTestServer(t)
	handler := server.Handler()

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		return w
	}

	t.Run("html page gets the reload script", func(t *testing.T) {
		w := get("/intro.html")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "new WebSocket(")
		assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))

		onDisk, err := os.ReadFile(filepath.Join(root, "intro.html"))
		require.NoError(t, err)
		assert.Equal(t, samplePage, string(onDisk), "generated page stays unchanged")
	})

	t.Run("root serves the index page", func(t *testing.T) {
		w := get("/")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), "<ul></ul>"))
		assert.Contains(t, w.Body.String(), "<script>")
	})

	t.Run("directory without slash redirects", func(t *testing.T) {
		w := get("/css")
		assert.Equal(t, http.StatusMovedPermanently, w.Code)
		assert.Equal(t, "/css/", w.Header().Get("Location"))
	})

	t.Run("directory without index", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/css/").Code)
	})

	t.Run("asset served untouched", func(t *testing.T) {
		w := get("/css/theme.css")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "body{}", w.Body.String())
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/nope.html").Code)
	})

	t.Run("head has no body", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("HEAD", "/intro.html", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("writes are not allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/intro.html", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestServer_Resolve(t *testing.T) {
	server, root := newTestServer(t)
	absRoot, err := filepath.Abs(root)
	require.NoError(t, err)

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/", absRoot, true},
		{"/intro.html", filepath.Join(absRoot, "intro.html"), true},
		{"/css/../intro.html", filepath.Join(absRoot, "intro.html"), true},
		{"/../secret.txt", filepath.Join(absRoot, "secret.txt"), true},
		{"../../etc/passwd", filepath.Join(absRoot, "etc", "passwd"), true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := server.resolve(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServer_Pages(t *testing.T) {
	server, _ := newTestServer(t)
	pages := []entities.PageEntry{
		{LessonName: "intro", FileName: "intro.html"},
		{LessonName: "my lesson", FileName: "my lesson.html"},
	}
	server.SetPages(pages)

	t.Run("snapshot is copied", func(t *testing.T) {
		got := server.Pages()
		got[0].LessonName = "changed"
		pages[1].LessonName = "changed"

		assert.Equal(t, "intro", server.Pages()[0].LessonName)
		assert.Equal(t, "my lesson", server.Pages()[1].LessonName)
	})

	t.Run("api lists pages", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/api/pages", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response PagesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Count)
		assert.Equal(t, PageResponse{Lesson: "intro", File: "intro.html", URL: "/intro.html#/"}, response.Pages[0])
		assert.Equal(t, "/my%20lesson.html#/", response.Pages[1].URL)
	})
}

func TestServer_CORS(t *testing.T) {
	server, _ := newTestServer(t)
	server.config.ServePort = 8000
	handler := server.Handler()

	request := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/api/pages", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, "http://localhost:8000", request("http://localhost:8000").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, request("http://evil.example").Header().Get("Access-Control-Allow-Origin"))

	server.config.CORSOrigins = "http://evil.example"
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/pages", nil)
	req.Header.Set("Origin", "http://evil.example")
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://evil.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_Lifecycle(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, server.Start(ctx))
	assert.True(t, server.IsRunning())
	assert.Error(t, server.Start(ctx), "second start fails")

	addr := server.Addr()
	require.NotEmpty(t, addr)
	assert.False(t, strings.HasSuffix(addr, ":0"), "ephemeral port is resolved")

	resp, err := http.Get("http://" + addr + "/intro.html")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "location.reload()")

	require.NoError(t, server.Stop(ctx))
	assert.False(t, server.IsRunning())
	assert.Error(t, server.Stop(ctx), "second stop fails")
}

type fixedStatus map[string]interface{}

func (f fixedStatus) Status() map[string]interface{} {
	out := map[string]interface{}{}
	for k, v := range f {
		out[k] = v
	}
	return out
}

func TestServer_Status(t *testing.T) {
	server, _ := newTestServer(t)
	server.SetPages([]entities.PageEntry{{LessonName: "intro", FileName: "intro.html"}})

	get := func() map[string]interface{} {
		w := httptest.NewRecorder()
		server.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/api/status", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var status map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		return status
	}

	t.Run("without reporter", func(t *testing.T) {
		status := get()
		assert.Equal(t, float64(1), status["pages"])
		assert.Equal(t, float64(0), status["clients"])
	})

	t.Run("with reporter", func(t *testing.T) {
		server.SetStatusReporter(fixedStatus{"healthy": true, "pages": 99})

		status := get()
		assert.Equal(t, true, status["healthy"])
		assert.Equal(t, float64(1), status["pages"], "registry snapshot wins")
	})
}
