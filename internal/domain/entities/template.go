package entities

import (
	"fmt"
	"strings"
)

// InsertionMarker is the template line after which generated content is spliced
const InsertionMarker = "<!-- Slides go here -->"

// Template is an HTML page template holding exactly one insertion marker line
type Template struct {
	lines  []string
	marker int
}

// ParseTemplate validates the template lines and locates the insertion marker.
// The marker must match a whole line exactly and appear only once.
func ParseTemplate(lines []string) (*Template, error) {
	marker := -1
	for i, line := range lines {
		if line != InsertionMarker {
			continue
		}
		if marker >= 0 {
			return nil, fmt.Errorf("%w: lines %d and %d", ErrDuplicateMarker, marker+1, i+1)
		}
		marker = i
	}

	if marker < 0 {
		return nil, ErrMarkerNotFound
	}

	return &Template{lines: lines, marker: marker}, nil
}

// Splice returns the template with fragment inserted right after the marker line.
// The marker line itself is kept and the template is left unmodified.
func (t *Template) Splice(fragment []string) []string {
	out := make([]string, 0, len(t.lines)+len(fragment))
	out = append(out, t.lines[:t.marker+1]...)
	out = append(out, fragment...)
	out = append(out, t.lines[t.marker+1:]...)
	return out
}

// SplitLines splits text into lines, accepting \n, \r\n and \r terminators.
// A trailing terminator does not produce an empty final line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// JoinLines joins lines into file content, terminating every line with \n
func JoinLines(lines []string) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
