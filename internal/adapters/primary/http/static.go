package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// reloadScript reloads the page when the server reports a rebuild
const reloadScript = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(proto + "//" + location.host + "/ws");
  ws.onmessage = function (msg) {
    var event = JSON.parse(msg.data);
    if (event.type === "reload") {
      location.reload();
    }
  };
})();
</script>
`

var bodyClose = regexp.MustCompile(`(?i)</body\s*>`)

// InjectReloadScript returns page with the live reload script placed before
// the last closing body tag, or appended when there is none. page is not modified.
func InjectReloadScript(page []byte) []byte {
	out := make([]byte, 0, len(page)+len(reloadScript))

	matches := bodyClose.FindAllIndex(page, -1)
	if len(matches) == 0 {
		out = append(out, page...)
		return append(out, reloadScript...)
	}

	at := matches[len(matches)-1][0]
	out = append(out, page[:at]...)
	out = append(out, reloadScript...)
	return append(out, page[at:]...)
}

// staticHandler serves the reveal directory, injecting the reload script into HTML pages
func (s *Server) staticHandler() http.Handler {
	fileServer := http.FileServer(http.Dir(s.root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fullPath, ok := s.resolve(r.URL.Path)
		if !ok {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		info, err := os.Stat(fullPath)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		if info.IsDir() {
			if !strings.HasSuffix(r.URL.Path, "/") {
				http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
				return
			}
			index := filepath.Join(fullPath, "index.html")
			if _, err := os.Stat(index); err != nil {
				http.NotFound(w, r)
				return
			}
			fullPath = index
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")

		if isHTML(fullPath) {
			s.serveHTML(w, r, fullPath)
			return
		}

		fileServer.ServeHTTP(w, r)
	})
}

// resolve maps a URL path onto a file below root
func (s *Server) resolve(urlPath string) (string, bool) {
	cleanPath := path.Clean("/" + urlPath)

	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return "", false
	}

	absPath, err := filepath.Abs(filepath.Join(absRoot, filepath.FromSlash(cleanPath)))
	if err != nil {
		return "", false
	}

	if absPath != absRoot && !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", false
	}

	return absPath, true
}

// serveHTML serves a generated page with the reload script added in memory
func (s *Server) serveHTML(w http.ResponseWriter, r *http.Request, fullPath string) {
	data, err := os.ReadFile(fullPath) // #nosec G304 - path is resolved below the reveal directory
	if err != nil {
		s.logger.Error("Reading %s: %v", fullPath, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(InjectReloadScript(data))
	}
}

func isHTML(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".html" || ext == ".htm"
}
