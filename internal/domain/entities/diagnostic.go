package entities

import "fmt"

// DiagnosticKind identifies what went wrong while extracting slides
type DiagnosticKind string

const (
	DiagnosticEndWithoutStart   DiagnosticKind = "end_without_start"
	DiagnosticStartWhileOpen    DiagnosticKind = "start_while_open"
	DiagnosticUnterminatedSlide DiagnosticKind = "unterminated_slide"
	DiagnosticLongSlide         DiagnosticKind = "long_slide"
)

// Severity of a diagnostic
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is a non-fatal problem found in a lesson file
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind" yaml:"kind"`
	Severity Severity       `json:"severity" yaml:"severity"`
	Line     int            `json:"line" yaml:"line"`
	Message  string         `json:"message" yaml:"message"`
}

// String formats the diagnostic with its line context
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: line %d", d.Message, d.Line)
}

// NewMarkerDiagnostic creates an error-severity diagnostic for a malformed marker sequence
func NewMarkerDiagnostic(kind DiagnosticKind, line int) Diagnostic {
	var msg string
	switch kind {
	case DiagnosticEndWithoutStart:
		msg = "Slide end found without slide start"
	case DiagnosticStartWhileOpen:
		msg = "New slide start found whilst still creating slide"
	case DiagnosticUnterminatedSlide:
		msg = "Slides being saved without last slide being properly closed"
	default:
		msg = string(kind)
	}

	return Diagnostic{
		Kind:     kind,
		Severity: SeverityError,
		Line:     line,
		Message:  msg,
	}
}

// NewLongSlideDiagnostic creates the warning emitted for slides over the length threshold
func NewLongSlideDiagnostic(startLine, lines int) Diagnostic {
	return Diagnostic{
		Kind:     DiagnosticLongSlide,
		Severity: SeverityWarning,
		Line:     startLine,
		Message:  fmt.Sprintf("Long slide with %d lines found", lines),
	}
}
