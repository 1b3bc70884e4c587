package monitoring

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// SessionStats is a point in time view of a serve session
type SessionStats struct {
	StartedAt      time.Time
	Rebuilds       int64
	Failures       int64
	LastRebuild    time.Time
	LastDuration   time.Duration
	AverageRebuild time.Duration
	LastError      string
	Pages          int
}

// SessionMonitor tracks rebuilds during `serve`
type SessionMonitor struct {
	mu    sync.RWMutex
	stats SessionStats
	clock ports.TimeProvider
}

// NewSessionMonitor creates a monitor whose session starts now
func NewSessionMonitor(clock ports.TimeProvider) *SessionMonitor {
	if clock == nil {
		clock = ports.NewSystemClock()
	}
	return &SessionMonitor{
		stats: SessionStats{StartedAt: clock.Now()},
		clock: clock,
	}
}

// RecordRebuild records one generation run; err is nil on success
func (m *SessionMonitor) RecordRebuild(duration time.Duration, pages int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Rebuilds++
	m.stats.LastRebuild = m.clock.Now()
	m.stats.LastDuration = duration

	// Exponential moving average
	if m.stats.AverageRebuild == 0 {
		m.stats.AverageRebuild = duration
	} else {
		alpha := 0.1
		m.stats.AverageRebuild = time.Duration(
			float64(m.stats.AverageRebuild)*(1-alpha) + float64(duration)*alpha,
		)
	}

	if err != nil {
		m.stats.Failures++
		m.stats.LastError = err.Error()
		return
	}
	m.stats.LastError = ""
	m.stats.Pages = pages
}

// Stats returns a copy of the current stats
func (m *SessionMonitor) Stats() SessionStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// Status returns the session state for the /api/status endpoint
func (m *SessionMonitor) Status() map[string]interface{} {
	stats := m.Stats()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := map[string]interface{}{
		"healthy":    stats.LastError == "",
		"uptime":     m.clock.Now().Sub(stats.StartedAt).Round(time.Second).String(),
		"pages":      stats.Pages,
		"goroutines": runtime.NumGoroutine(),
		"heap_mb":    safeUint64ToInt64(memStats.HeapAlloc) / (1024 * 1024),
		"rebuilds": map[string]interface{}{
			"count":         stats.Rebuilds,
			"failures":      stats.Failures,
			"last_ms":       stats.LastDuration.Milliseconds(),
			"average_ms":    stats.AverageRebuild.Milliseconds(),
			"last_finished": stats.LastRebuild,
		},
	}
	if stats.LastError != "" {
		status["last_error"] = stats.LastError
	}

	return status
}

// safeUint64ToInt64 safely converts uint64 to int64, capping at max int64 value
func safeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(val)
}

// Ensure SessionMonitor implements ports.StatusReporter
var _ ports.StatusReporter = (*SessionMonitor)(nil)
