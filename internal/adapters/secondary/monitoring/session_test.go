package monitoring

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func TestSessionMonitor_RecordRebuild(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	m := NewSessionMonitor(clock)

	clock.now = clock.now.Add(time.Minute)
	m.RecordRebuild(100*time.Millisecond, 4, nil)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.Rebuilds)
	assert.Equal(t, 4, stats.Pages)
	assert.Equal(t, 100*time.Millisecond, stats.AverageRebuild)
	assert.Equal(t, clock.now, stats.LastRebuild)

	t.Run("failure keeps the last page count", func(t *testing.T) {
		m.RecordRebuild(200*time.Millisecond, 0, errors.New("template broken"))

		stats := m.Stats()
		assert.Equal(t, int64(2), stats.Rebuilds)
		assert.Equal(t, int64(1), stats.Failures)
		assert.Equal(t, 4, stats.Pages)
		assert.Equal(t, "template broken", stats.LastError)
		assert.InDelta(t, float64(110*time.Millisecond), float64(stats.AverageRebuild), float64(time.Microsecond))
	})

	t.Run("success clears the error", func(t *testing.T) {
		m.RecordRebuild(time.Millisecond, 5, nil)
		assert.Empty(t, m.Stats().LastError)
	})
}

func TestSessionMonitor_Status(t *testing.T) {
	clock := &stepClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	m := NewSessionMonitor(clock)
	m.RecordRebuild(50*time.Millisecond, 2, errors.New("lesson a: writing: denied"))
	clock.now = clock.now.Add(90 * time.Second)

	status := m.Status()

	assert.Equal(t, false, status["healthy"])
	assert.Equal(t, "1m30s", status["uptime"])
	assert.Equal(t, "lesson a: writing: denied", status["last_error"])

	rebuilds, ok := status["rebuilds"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(1), rebuilds["count"])
	assert.Equal(t, int64(50), rebuilds["last_ms"])
}

func TestSafeUint64ToInt64(t *testing.T) {
	assert.Equal(t, int64(42), safeUint64ToInt64(42))
	assert.Equal(t, int64(math.MaxInt64), safeUint64ToInt64(math.MaxUint64))
}
