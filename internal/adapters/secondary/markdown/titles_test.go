package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fredcamaral/slidex/internal/domain/entities"
)

func TestTitleExtractor_Title(t *testing.T) {
	extractor := NewTitleExtractor()

	tests := []struct {
		name     string
		lines    []string
		index    int
		expected string
	}{
		{
			name:     "atx heading",
			lines:    []string{"# Arrays", "", "Some text"},
			expected: "Arrays",
		},
		{
			name:     "first heading of any level wins",
			lines:    []string{"intro paragraph", "", "### Details", "# Later"},
			expected: "Details",
		},
		{
			name:     "setext heading",
			lines:    []string{"Loops", "=====", "body"},
			expected: "Loops",
		},
		{
			name:     "inline markup is flattened",
			lines:    []string{"## The `fmt` *package*"},
			expected: "The fmt package",
		},
		{
			name:     "links keep their text",
			lines:    []string{"# See [the docs](https://go.dev)"},
			expected: "See the docs",
		},
		{
			name:     "entities are decoded",
			lines:    []string{"# Fish &amp; Chips"},
			expected: "Fish & Chips",
		},
		{
			name:     "inline html is dropped",
			lines:    []string{"# Hello <em>world</em>"},
			expected: "Hello world",
		},
		{
			name:     "angle brackets in code stay",
			lines:    []string{"## Using `a < b`"},
			expected: "Using a < b",
		},
		{
			name:     "heading inside code block is ignored",
			lines:    []string{"```", "# not a title", "```"},
			index:    2,
			expected: "Slide 3",
		},
		{
			name:     "no heading",
			lines:    []string{"- item", "- item"},
			index:    0,
			expected: "Slide 1",
		},
		{
			name:     "empty slide",
			lines:    nil,
			index:    4,
			expected: "Slide 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slide := entities.Slide{Lines: tt.lines}
			assert.Equal(t, tt.expected, extractor.Title(slide, tt.index))
		})
	}
}
