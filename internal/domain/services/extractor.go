package services

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"

	"github.com/fredcamaral/slidex/internal/domain/entities"
)

// Slide marker lines. They are matched case-insensitively after trimming
// surrounding whitespace.
const (
	SlideStartMarker = "-- *Slide* --"
	SlideEndMarker   = "-- *Slide End* --"
)

// DefaultMaxSlideLines is the slide length above which a warning is emitted
const DefaultMaxSlideLines = 22

// maxLineBytes bounds a single lesson line read by ExtractFromReader
const maxLineBytes = 4 * 1024 * 1024

type extractState int

const (
	// stateIdle means no slide is open and content lines are ignored
	stateIdle extractState = iota
	// stateAccumulating means content lines are appended to the open slide
	stateAccumulating
)

type lineKind int

const (
	lineContent lineKind = iota
	lineStart
	lineEnd
)

// ExtractorOption configures a SlideExtractor
type ExtractorOption func(*SlideExtractor)

// WithMaxSlideLines sets the length warning threshold. Zero or less disables the warning.
func WithMaxSlideLines(n int) ExtractorOption {
	return func(e *SlideExtractor) {
		e.maxLines = n
	}
}

// WithDiagnosticHandler registers fn to receive every diagnostic as it is found
func WithDiagnosticHandler(fn func(entities.Diagnostic)) ExtractorOption {
	return func(e *SlideExtractor) {
		e.onDiagnostic = fn
	}
}

// SlideExtractor is a single-pass state machine turning lesson lines into slides.
// It is not safe for concurrent use.
type SlideExtractor struct {
	maxLines     int
	onDiagnostic func(entities.Diagnostic)
	fold         cases.Caser
	startMarker  string
	endMarker    string

	state       extractState
	current     entities.Slide
	slides      []entities.Slide
	diagnostics []entities.Diagnostic
	finished    bool
}

// NewSlideExtractor creates an extractor in the idle state
func NewSlideExtractor(opts ...ExtractorOption) *SlideExtractor {
	fold := cases.Fold()
	e := &SlideExtractor{
		maxLines:    DefaultMaxSlideLines,
		fold:        fold,
		startMarker: fold.String(SlideStartMarker),
		endMarker:   fold.String(SlideEndMarker),
		slides:      []entities.Slide{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Feed processes one line; lineNo is its 1-based position in the source
func (e *SlideExtractor) Feed(line string, lineNo int) {
	if e.finished {
		return
	}

	switch e.classify(line) {
	case lineEnd:
		if e.state != stateAccumulating {
			e.report(entities.NewMarkerDiagnostic(entities.DiagnosticEndWithoutStart, lineNo))
			return
		}
		e.closeSlide()

	case lineStart:
		if e.state == stateAccumulating {
			e.report(entities.NewMarkerDiagnostic(entities.DiagnosticStartWhileOpen, lineNo))
			e.closeSlide()
		}
		e.openSlide(lineNo)

	default:
		if e.state == stateAccumulating {
			e.current.Lines = append(e.current.Lines, line)
		}
	}
}

// Finish ends the input and returns the closed slides in document order.
// A slide still open at this point is reported and discarded.
func (e *SlideExtractor) Finish() []entities.Slide {
	if !e.finished {
		if e.state == stateAccumulating {
			e.report(entities.NewMarkerDiagnostic(entities.DiagnosticUnterminatedSlide, e.current.StartLine))
			e.current = entities.Slide{}
			e.state = stateIdle
		}
		e.finished = true
	}

	return e.slides
}

// Diagnostics returns everything reported so far, in the order it was found
func (e *SlideExtractor) Diagnostics() []entities.Diagnostic {
	return e.diagnostics
}

func (e *SlideExtractor) classify(line string) lineKind {
	folded := e.fold.String(strings.TrimSpace(line))
	switch folded {
	case e.endMarker:
		return lineEnd
	case e.startMarker:
		return lineStart
	default:
		return lineContent
	}
}

func (e *SlideExtractor) openSlide(lineNo int) {
	e.current = entities.Slide{StartLine: lineNo, Lines: []string{}}
	e.state = stateAccumulating
}

func (e *SlideExtractor) closeSlide() {
	slide := e.current
	if e.maxLines > 0 && slide.LineCount() > e.maxLines {
		e.report(entities.NewLongSlideDiagnostic(slide.StartLine, slide.LineCount()))
	}

	e.slides = append(e.slides, slide)
	e.current = entities.Slide{}
	e.state = stateIdle
}

func (e *SlideExtractor) report(d entities.Diagnostic) {
	e.diagnostics = append(e.diagnostics, d)
	if e.onDiagnostic != nil {
		e.onDiagnostic(d)
	}
}

// ExtractSlides runs the extractor over lines numbered from 1
func ExtractSlides(lines []string, opts ...ExtractorOption) ([]entities.Slide, []entities.Diagnostic) {
	e := NewSlideExtractor(opts...)
	for i, line := range lines {
		e.Feed(line, i+1)
	}
	slides := e.Finish()
	return slides, e.Diagnostics()
}

// ExtractFromReader runs the extractor over every line read from r
func ExtractFromReader(ctx context.Context, r io.Reader, opts ...ExtractorOption) ([]entities.Slide, []entities.Diagnostic, error) {
	e := NewSlideExtractor(opts...)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanLines)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, e.Diagnostics(), err
			}
		}
		e.Feed(scanner.Text(), lineNo)
	}
	if err := scanner.Err(); err != nil {
		return nil, e.Diagnostics(), fmt.Errorf("reading line %d: %w", lineNo+1, err)
	}

	slides := e.Finish()
	return slides, e.Diagnostics(), nil
}

// scanLines is bufio.ScanLines that also ends a line on a lone "\r"
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// a "\r" at the end of the buffer may be the first half of "\r\n"
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
