package entities

import (
	"path/filepath"
	"strings"
)

// Presentation is the set of slides extracted from one lesson file
type Presentation struct {
	// LessonName is the source file name with its extension stripped
	LessonName string `json:"lesson" yaml:"lesson"`

	// SourcePath is the lesson file the slides were read from
	SourcePath string `json:"source" yaml:"source"`

	// Slides contains all closed slides in document order
	Slides []Slide `json:"slides" yaml:"slides"`

	// Diagnostics collected while the lesson was parsed
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// NewPresentation creates an empty presentation for the lesson at path
func NewPresentation(path string) *Presentation {
	return &Presentation{
		LessonName: LessonNameFromPath(path),
		SourcePath: path,
	}
}

// LessonNameFromPath strips the directory and everything from the last dot
// of the file name. A file name without a dot is used as is, and a name that
// is only an extension such as ".md" gives the empty lesson name.
func LessonNameFromPath(path string) string {
	name := filepath.Base(path)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

// OutputFileName returns the name of the HTML page generated for the lesson
func (p *Presentation) OutputFileName() string {
	return p.LessonName + ".html"
}

// SlideCount returns the total number of slides
func (p *Presentation) SlideCount() int {
	return len(p.Slides)
}

// HasErrors returns true if any malformed-marker diagnostic was reported
func (p *Presentation) HasErrors() bool {
	for _, d := range p.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
