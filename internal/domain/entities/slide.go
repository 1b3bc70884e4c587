package entities

import "strings"

// Slide represents a single slide region extracted from a lesson file
type Slide struct {
	// StartLine is the 1-based line number of the slide start marker
	StartLine int `json:"start_line" yaml:"start_line"`

	// Lines holds the raw content lines between the markers, untouched
	Lines []string `json:"lines" yaml:"lines"`
}

// LineCount returns the number of content lines in the slide
func (s Slide) LineCount() int {
	return len(s.Lines)
}

// Content returns the slide lines joined with newlines
func (s Slide) Content() string {
	return strings.Join(s.Lines, "\n")
}
