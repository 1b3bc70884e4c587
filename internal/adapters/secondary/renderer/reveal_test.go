package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/slidex/internal/domain/entities"
)

func TestRevealRenderer_PresentationFragment(t *testing.T) {
	r := NewRevealRenderer()

	t.Run("wraps each slide in order", func(t *testing.T) {
		fragment := r.PresentationFragment([]entities.Slide{
			{StartLine: 1, Lines: []string{"# One", "<b>raw</b> & kept"}},
			{StartLine: 5, Lines: []string{}},
			{StartLine: 7, Lines: []string{"two"}},
		})

		assert.Equal(t, []string{
			SectionOpen, "# One", "<b>raw</b> & kept", SectionClose,
			SectionOpen, SectionClose,
			SectionOpen, "two", SectionClose,
		}, fragment)
	})

	t.Run("no slides", func(t *testing.T) {
		assert.Empty(t, r.PresentationFragment(nil))
	})

	t.Run("markup matches reveal.js markdown sections", func(t *testing.T) {
		assert.Equal(t, `<section data-markdown><script type="text/template">`, SectionOpen)
		assert.Equal(t, `</script></section>`, SectionClose)
	})
}

func TestRevealRenderer_IndexFragment(t *testing.T) {
	r := NewRevealRenderer()

	t.Run("one link per page in order", func(t *testing.T) {
		fragment := r.IndexFragment([]entities.PageEntry{
			{LessonName: "intro", FileName: "intro.html"},
			{LessonName: "arrays", FileName: "arrays.html"},
		})

		assert.Equal(t, []string{
			"<ul>",
			`<li><a href="intro.html#/">intro</a></li>`,
			`<li><a href="arrays.html#/">arrays</a></li>`,
			"</ul>",
		}, fragment)
	})

	t.Run("empty registry", func(t *testing.T) {
		assert.Equal(t, []string{"<ul>", "</ul>"}, r.IndexFragment(nil))
	})

	tests := []struct {
		name     string
		page     entities.PageEntry
		expected string
	}{
		{
			name:     "space in file name",
			page:     entities.PageEntry{LessonName: "week one", FileName: "week one.html"},
			expected: `<li><a href="week%20one.html#/">week one</a></li>`,
		},
		{
			name:     "hash in file name",
			page:     entities.PageEntry{LessonName: "c#", FileName: "c#.html"},
			expected: `<li><a href="c%23.html#/">c#</a></li>`,
		},
		{
			name:     "markup in lesson name",
			page:     entities.PageEntry{LessonName: "<b>bold</b>", FileName: "<b>bold</b>.html"},
			expected: `<li><a href="%3Cb%3Ebold%3C%2Fb%3E.html#/">&lt;b&gt;bold&lt;/b&gt;</a></li>`,
		},
		{
			name:     "angle brackets kept as text",
			page:     entities.PageEntry{LessonName: "a<b>c", FileName: "a<b>c.html"},
			expected: `<li><a href="a%3Cb%3Ec.html#/">a&lt;b&gt;c</a></li>`,
		},
		{
			name:     "quote cannot end the attribute",
			page:     entities.PageEntry{LessonName: `say "hi"`, FileName: `say "hi".html`},
			expected: `<li><a href="say%20%22hi%22.html#/">say &#34;hi&#34;</a></li>`,
		},
		{
			name:     "ampersand",
			page:     entities.PageEntry{LessonName: "a&b", FileName: "a&b.html"},
			expected: `<li><a href="a&amp;b.html#/">a&amp;b</a></li>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragment := r.IndexFragment([]entities.PageEntry{tt.page})
			require.Len(t, fragment, 3)
			assert.Equal(t, tt.expected, fragment[1])
		})
	}
}

func TestRenderStarterTemplate(t *testing.T) {
	out, err := RenderStarterTemplate("My <course>", "reveal.js")
	require.NoError(t, err)

	_, err = entities.ParseTemplate(entities.SplitLines(string(out)))
	require.NoError(t, err, "starter template holds exactly one insertion marker")

	assert.Contains(t, string(out), "\n"+entities.InsertionMarker+"\n")
	assert.Contains(t, string(out), "<title>My &lt;course&gt;</title>")
	assert.Contains(t, string(out), `src="reveal.js/dist/reveal.js"`)
}
