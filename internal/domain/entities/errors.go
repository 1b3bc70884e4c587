package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrMarkerNotFound is returned when a template has no insertion marker line
	ErrMarkerNotFound = errors.New("insertion marker " + InsertionMarker + " not found in template")

	// ErrDuplicateMarker is returned when a template has more than one insertion marker line
	ErrDuplicateMarker = errors.New("insertion marker " + InsertionMarker + " appears more than once in template")
)

// ConfigError reports a fatal problem with the settings or the template
type ConfigError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error in %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Source, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// FrameworkMissingError reports that the slideshow framework is not checked out
type FrameworkMissingError struct {
	Path string
}

func (e *FrameworkMissingError) Error() string {
	return fmt.Sprintf("could not find reveal.js at %s. Have you forgotten to check it out?", e.Path)
}

// Remediation returns the instructions shown to the user
func (e *FrameworkMissingError) Remediation() string {
	return "If so, run\n   git submodule init\n   git submodule update\nto fetch it..."
}

// LessonError wraps an I/O failure while processing a single lesson
type LessonError struct {
	Lesson string
	Op     string
	Cause  error
}

func (e *LessonError) Error() string {
	return fmt.Sprintf("lesson %s: %s: %v", e.Lesson, e.Op, e.Cause)
}

func (e *LessonError) Unwrap() error {
	return e.Cause
}
