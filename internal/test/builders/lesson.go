package builders

import (
	"strconv"
	"strings"

	"github.com/fredcamaral/slidex/internal/domain/entities"
)

const (
	slideStart = "-- *Slide* --"
	slideEnd   = "-- *Slide End* --"
)

// LessonBuilder helps build lesson file content for testing
type LessonBuilder struct {
	lines []string
}

// NewLessonBuilder creates an empty lesson
func NewLessonBuilder() *LessonBuilder {
	return &LessonBuilder{lines: []string{}}
}

// WithProse adds lines that sit outside any slide
func (b *LessonBuilder) WithProse(lines ...string) *LessonBuilder {
	b.lines = append(b.lines, lines...)
	return b
}

// WithSlide adds a properly closed slide holding lines
func (b *LessonBuilder) WithSlide(lines ...string) *LessonBuilder {
	b.lines = append(b.lines, slideStart)
	b.lines = append(b.lines, lines...)
	b.lines = append(b.lines, slideEnd)
	return b
}

// WithSlides adds n slides, each titled "# <title> <i>"
func (b *LessonBuilder) WithSlides(title string, n int) *LessonBuilder {
	for i := 1; i <= n; i++ {
		b.WithSlide("# "+title+" "+strconv.Itoa(i), "content")
	}
	return b
}

// WithUnterminatedSlide adds a start marker and lines with no end marker
func (b *LessonBuilder) WithUnterminatedSlide(lines ...string) *LessonBuilder {
	b.lines = append(b.lines, slideStart)
	b.lines = append(b.lines, lines...)
	return b
}

// WithStrayEnd adds an end marker with no open slide
func (b *LessonBuilder) WithStrayEnd() *LessonBuilder {
	b.lines = append(b.lines, slideEnd)
	return b
}

// Lines returns the lesson lines
func (b *LessonBuilder) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Build returns the lesson as file content with a trailing newline
func (b *LessonBuilder) Build() string {
	if len(b.lines) == 0 {
		return ""
	}
	return strings.Join(b.lines, "\n") + "\n"
}

// ExpectedSlides returns the slides a well-formed lesson should yield
func (b *LessonBuilder) ExpectedSlides() []entities.Slide {
	var slides []entities.Slide
	var current *entities.Slide
	for i, line := range b.lines {
		switch line {
		case slideStart:
			current = &entities.Slide{StartLine: i + 1, Lines: []string{}}
		case slideEnd:
			if current != nil {
				slides = append(slides, *current)
				current = nil
			}
		default:
			if current != nil {
				current.Lines = append(current.Lines, line)
			}
		}
	}
	return slides
}
