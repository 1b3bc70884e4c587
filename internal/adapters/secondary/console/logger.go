package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

var levelMap = map[entities.LogLevel]int{
	entities.LogLevelDebug: 0,
	entities.LogLevelInfo:  1,
	entities.LogLevelWarn:  2,
	entities.LogLevelError: 3,
}

// styles holds the per-level prefix and message styles
type styles struct {
	color       bool
	errorPrefix lipgloss.Style
	warnPrefix  lipgloss.Style
	debug       lipgloss.Style
}

// newStyles builds styles bound to renderer
func newStyles(renderer *lipgloss.Renderer, color bool) styles {
	return styles{
		color:       color,
		errorPrefix: renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		warnPrefix:  renderer.NewStyle().Foreground(lipgloss.Color("11")),
		debug:       renderer.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// render applies style unless color is off
func (s styles) render(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}

// Logger writes levelled progress and diagnostic lines to a terminal.
// Colors are dropped automatically when out is not a terminal.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  entities.LogLevel
	styles styles
}

// NewLogger creates a logger writing to out at the given level
func NewLogger(out io.Writer, level entities.LogLevel, color bool) *Logger {
	if _, ok := levelMap[level]; !ok {
		level = entities.LogLevelInfo
	}

	return &Logger{
		out:    out,
		level:  level,
		styles: newStyles(lipgloss.NewRenderer(out), color),
	}
}

// SetLevel changes the minimum level written
func (l *Logger) SetLevel(level entities.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := levelMap[level]; ok {
		l.level = level
	}
}

// shouldLog checks if the message should be logged based on level
func (l *Logger) shouldLog(msgLevel entities.LogLevel) bool {
	return levelMap[msgLevel] >= levelMap[l.level]
}

// Debug logs dimmed detail lines
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.write(entities.LogLevelDebug, func(s styles, text string) string {
		return s.render(s.debug, text)
	}, msg, args...)
}

// Info logs progress lines as is
func (l *Logger) Info(msg string, args ...interface{}) {
	l.write(entities.LogLevelInfo, func(s styles, text string) string {
		return text
	}, msg, args...)
}

// Warn logs lines prefixed with "Warning."
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.write(entities.LogLevelWarn, func(s styles, text string) string {
		return s.render(s.warnPrefix, "Warning.") + " " + text
	}, msg, args...)
}

// Error logs lines prefixed with "Error!"
func (l *Logger) Error(msg string, args ...interface{}) {
	l.write(entities.LogLevelError, func(s styles, text string) string {
		return s.render(s.errorPrefix, "Error!") + " " + text
	}, msg, args...)
}

func (l *Logger) write(level entities.LogLevel, format func(styles, string) string, msg string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.shouldLog(level) {
		return
	}

	text := msg
	if len(args) > 0 {
		text = fmt.Sprintf(msg, args...)
	}
	_, _ = fmt.Fprintln(l.out, format(l.styles, text))
}

// Ensure Logger implements ports.Logger
var _ ports.Logger = (*Logger)(nil)
