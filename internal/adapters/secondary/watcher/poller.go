package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// PollingWatcher watches files and directory trees by polling.
// Changes are coalesced per path and delivered once no further change
// has been seen for the debounce period.
type PollingWatcher struct {
	interval time.Duration
	debounce time.Duration
	logger   ports.Logger

	mu        sync.Mutex
	roots     []string
	fileInfos map[string]FileInfo
	started   bool

	events   chan ports.FileChangeEvent
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopCh   chan struct{}
}

// FileInfo stores information about a file
type FileInfo struct {
	Size     int64
	ModTime  time.Time
	Checksum string
}

// NewPollingWatcher creates a new polling-based file watcher
func NewPollingWatcher(interval, debounce time.Duration, logger ports.Logger) *PollingWatcher {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &PollingWatcher{
		interval:  interval,
		debounce:  debounce,
		logger:    logger,
		fileInfos: make(map[string]FileInfo),
		events:    make(chan ports.FileChangeEvent, 64),
		stopCh:    make(chan struct{}),
	}
}

// Watch starts watching the given files and directory trees.
// Every path must exist when watching starts.
func (w *PollingWatcher) Watch(ctx context.Context, paths ...string) (<-chan ports.FileChangeEvent, error) {
	if len(paths) == 0 {
		return nil, errors.New("no paths to watch")
	}

	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		if _, err := os.Stat(absPath); err != nil {
			return nil, fmt.Errorf("initial scan: %w", err)
		}
		roots = append(roots, absPath)
	}

	infos := make(map[string]FileInfo)
	for path, info := range w.stat(roots) {
		checksum, err := w.calculateChecksum(path)
		if err != nil {
			return nil, fmt.Errorf("initial scan: %w", err)
		}
		info.Checksum = checksum
		infos[path] = info
	}

	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil, errors.New("watcher already started")
	}
	w.started = true
	w.roots = roots
	w.fileInfos = infos
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx)
	}()

	return w.events, nil
}

// Stop stops the file watcher and closes the events channel
func (w *PollingWatcher) Stop() error {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		close(w.events)
	})
	return nil
}

// pollLoop continuously polls for changes until stopped
func (w *PollingWatcher) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	pending := make(map[string]ports.FileChangeEvent)
	var lastChange time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			changes := w.checkForChanges()
			if len(changes) > 0 {
				lastChange = time.Now()
				for _, change := range changes {
					pending[change.Path] = coalesce(pending[change.Path], change)
				}
			}

			if len(pending) == 0 || time.Since(lastChange) < w.debounce {
				continue
			}

			for _, event := range sortedEvents(pending) {
				select {
				case w.events <- event:
				case <-ctx.Done():
					return
				case <-w.stopCh:
					return
				}
			}
			pending = make(map[string]ports.FileChangeEvent)
		}
	}
}

// checkForChanges compares the current tree against the last snapshot
func (w *PollingWatcher) checkForChanges() []ports.FileChangeEvent {
	w.mu.Lock()
	roots := w.roots
	w.mu.Unlock()

	current := w.stat(roots)
	now := time.Now()
	var changes []ports.FileChangeEvent

	w.mu.Lock()
	defer w.mu.Unlock()

	for path, info := range current {
		oldInfo, exists := w.fileInfos[path]

		// Skip the checksum if size and modification time are unchanged
		if exists && oldInfo.Size == info.Size && oldInfo.ModTime.Equal(info.ModTime) {
			continue
		}

		checksum, err := w.calculateChecksum(path)
		if err != nil {
			w.logger.Debug("watch error: %v", err)
			continue
		}
		info.Checksum = checksum
		w.fileInfos[path] = info

		switch {
		case !exists:
			changes = append(changes, ports.FileChangeEvent{Path: path, Type: ports.ChangeCreated, Timestamp: now})
		case oldInfo.Checksum != checksum:
			changes = append(changes, ports.FileChangeEvent{Path: path, Type: ports.ChangeModified, Timestamp: now})
		}
	}

	for path := range w.fileInfos {
		if _, ok := current[path]; !ok {
			delete(w.fileInfos, path)
			changes = append(changes, ports.FileChangeEvent{Path: path, Type: ports.ChangeDeleted, Timestamp: now})
		}
	}

	return changes
}

// stat lists every regular file below roots with its size and modification time
func (w *PollingWatcher) stat(roots []string) map[string]FileInfo {
	infos := make(map[string]FileInfo)
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// A vanished root or entry simply has no files
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			infos[path] = FileInfo{Size: info.Size(), ModTime: info.ModTime()}
			return nil
		})
		if err != nil {
			w.logger.Debug("watch error: %v", err)
		}
	}
	return infos
}

// calculateChecksum calculates SHA256 checksum of a file
func (w *PollingWatcher) calculateChecksum(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path comes from walking the watched roots
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// coalesce merges a new change into the pending change for the same path
func coalesce(pending, next ports.FileChangeEvent) ports.FileChangeEvent {
	if pending.Path == "" {
		return next
	}
	if pending.Type == ports.ChangeCreated && next.Type == ports.ChangeModified {
		next.Type = ports.ChangeCreated
	}
	return next
}

func sortedEvents(pending map[string]ports.FileChangeEvent) []ports.FileChangeEvent {
	events := make([]ports.FileChangeEvent, 0, len(pending))
	for _, event := range pending {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Path < events[j].Path
	})
	return events
}

// Ensure PollingWatcher implements ports.FileWatcher
var _ ports.FileWatcher = (*PollingWatcher)(nil)
