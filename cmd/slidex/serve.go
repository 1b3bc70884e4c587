package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/fredcamaral/slidex/internal/adapters/primary/http"
	"github.com/fredcamaral/slidex/internal/adapters/secondary/browser"
	"github.com/fredcamaral/slidex/internal/adapters/secondary/monitoring"
	"github.com/fredcamaral/slidex/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// serveShutdownTimeout bounds the graceful HTTP shutdown
const serveShutdownTimeout = 5 * time.Second

type serveOptions struct {
	open bool
}

func newServeCmd(opts *globalOptions) *cobra.Command {
	serveOpts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Generate the pages, serve them and regenerate on change",
		Long: `Generate every page, then serve the reveal directory over HTTP.
Lessons and the page template are polled for changes; every change reruns
the full generation and reloads the open browser tabs.

Example:
  slidex serve
  slidex serve --port 9000 --interval 250 --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return serveLessons(cmd.Context(), a, serveOpts, nil)
		},
	}

	// Defaults come from the settings; these only override when set
	cmd.Flags().String("host", "localhost", "Host to bind to")
	cmd.Flags().Int("port", 8000, "Port to serve on (0 picks a free port)")
	cmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
	cmd.Flags().BoolVar(&serveOpts.open, "open", false, "Open the index page in a browser")

	return cmd
}

// serveLessons runs the live session until ctx is cancelled.
// ready, when set, receives the index URL once the server is listening.
func serveLessons(ctx context.Context, a *app, serveOpts *serveOptions, ready func(url string)) error {
	monitor := monitoring.NewSessionMonitor(nil)

	result, err := a.generator.Run(ctx)
	if err != nil {
		return err
	}
	monitor.RecordRebuild(result.Duration(), len(result.Pages), nil)

	server := httpadapter.NewServer(a.config, a.logger)
	server.SetPages(result.Pages)
	server.SetStatusReporter(monitor)
	if err := server.Start(ctx); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during shutdown: %v", err)
		}
	}()

	url := "http://" + server.Addr() + "/"
	a.logger.Info("Serving %d page(s) at %s (Ctrl+C to stop)", len(result.Pages), url)

	interval := a.config.GetWatchInterval()
	w := watcher.NewPollingWatcher(interval, interval, a.logger)
	events, err := w.Watch(ctx, a.config.LessonsDir(), a.config.TemplatePath())
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	if serveOpts.open {
		if err := browser.NewLauncher().Open(url); err != nil {
			a.logger.Warn("Failed to open browser: %v", err)
		}
	}

	if ready != nil {
		ready(url)
	}

	session := &liveSession{app: a, server: server, monitor: monitor}
	session.run(ctx, events)

	a.logger.Info("Shutting down server...")
	return nil
}

// liveSession serializes rebuilds triggered by source changes
type liveSession struct {
	app     *app
	server  *httpadapter.Server
	monitor *monitoring.SessionMonitor
}

func (s *liveSession) run(ctx context.Context, events <-chan ports.FileChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if !s.relevant(event) {
				continue
			}
			s.app.logger.Info("%s %s, regenerating", event.Path, event.Type)

			// One rebuild covers every change already queued
			s.drain(events)
			s.rebuild(ctx)
		}
	}
}

// relevant reports whether event concerns a lesson or the template
func (s *liveSession) relevant(event ports.FileChangeEvent) bool {
	template, err := filepath.Abs(s.app.config.TemplatePath())
	if err == nil && filepath.Clean(event.Path) == template {
		return true
	}
	return s.app.finder.Matches(event.Path)
}

func (s *liveSession) drain(events <-chan ports.FileChangeEvent) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (s *liveSession) rebuild(ctx context.Context) {
	start := time.Now()
	result, err := s.app.generator.Run(ctx)
	if ctx.Err() != nil {
		return
	}
	s.monitor.RecordRebuild(time.Since(start), len(result.Pages), err)

	if err != nil {
		s.app.logger.Error("Regeneration failed: %v", err)
		s.server.NotifyError(err)
		return
	}

	s.app.logger.Info("Regenerated %d page(s)", len(result.Pages))
	s.server.NotifyReload(result.Pages)
}
