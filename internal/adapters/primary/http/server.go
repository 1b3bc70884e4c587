package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// PageResponse describes one generated page in the /api/pages response
type PageResponse struct {
	Lesson string `json:"lesson"`
	File   string `json:"file"`
	URL    string `json:"url"`
}

// PagesResponse is the body of /api/pages
type PagesResponse struct {
	Pages []PageResponse `json:"pages"`
	Count int            `json:"count"`
}

// Server serves the generated pages with live reload
type Server struct {
	config   *entities.Config
	root     string
	logger   ports.Logger
	hub      *Hub
	server   *http.Server
	listener net.Listener
	pages    []entities.PageEntry
	status   ports.StatusReporter
	mu       sync.RWMutex
	running  bool
}

// NewServer creates a server for the reveal directory of config
func NewServer(config *entities.Config, logger ports.Logger) *Server {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &Server{
		config:  config,
		root:    config.RevealDir(),
		logger:  logger,
		hub:     NewHub(),
		pages:   []entities.PageEntry{},
	}
}

// SetPages replaces the registry snapshot served by /api/pages
func (s *Server) SetPages(pages []entities.PageEntry) {
	snapshot := make([]entities.PageEntry, len(pages))
	copy(snapshot, pages)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages = snapshot
}

// Pages returns the current registry snapshot
func (s *Server) Pages() []entities.PageEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.PageEntry, len(s.pages))
	copy(out, s.pages)
	return out
}

// SetStatusReporter adds session details to the /api/status response
func (s *Server) SetStatusReporter(reporter ports.StatusReporter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = reporter
}

// Handler returns the complete HTTP handler with middleware applied
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/ws", s.handleWebSocket).Methods("GET")
	router.HandleFunc("/api/pages", s.handlePages).Methods("GET")
	router.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	router.PathPrefix("/").Handler(s.staticHandler()).Methods("GET", "HEAD")

	handler := chain(router, recoverPanics(s.logger), logRequests(s.logger), securityHeaders)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins(),
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})

	return c.Handler(handler)
}

// Start binds the configured address and serves in the background
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	addr := net.JoinHostPort(s.config.ServeHost, strconv.Itoa(s.config.ServePort))
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.listener = listener
	s.running = true

	server := s.server
	go func() {
		s.logger.Info("Serving %s at http://%s/", s.root, listener.Addr())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Addr returns the bound address, useful when the configured port is 0
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully stops the HTTP server and disconnects every client
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s.running = false
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// NotifyReload publishes a new registry snapshot and tells every client to reload
func (s *Server) NotifyReload(pages []entities.PageEntry) {
	s.SetPages(pages)
	s.hub.Publish(ports.UpdateEvent{
		Type:      ports.EventTypeReload,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"pages": len(pages),
		},
	})
}

// NotifyError tells every client that a rebuild failed
func (s *Server) NotifyError(err error) {
	s.hub.Publish(ports.UpdateEvent{
		Type:      ports.EventTypeError,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": err.Error(),
		},
	})
}

// handlePages returns the current registry as JSON
func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	pages := s.Pages()
	response := PagesResponse{
		Pages: make([]PageResponse, 0, len(pages)),
		Count: len(pages),
	}
	for _, page := range pages {
		response.Pages = append(response.Pages, PageResponse{
			Lesson: page.LessonName,
			File:   page.FileName,
			URL:    "/" + url.PathEscape(page.FileName) + "#/",
		})
	}

	s.writeJSON(w, response)
}

// handleStatus reports the page count, live clients and session details
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	reporter := s.status
	pages := len(s.pages)
	s.mu.RUnlock()

	status := map[string]interface{}{}
	if reporter != nil {
		status = reporter.Status()
	}
	status["pages"] = pages
	status["clients"] = s.hub.Len()

	s.writeJSON(w, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Encoding JSON response: %v", err)
	}
}

// allowedOrigins returns the configured CORS origins, or the server's own loopback origins
func (s *Server) allowedOrigins() []string {
	if origins := s.config.GetCORSOrigins(); len(origins) > 0 {
		return origins
	}

	port := strconv.Itoa(s.config.ServePort)
	return []string{
		"http://localhost:" + port,
		"http://127.0.0.1:" + port,
	}
}
