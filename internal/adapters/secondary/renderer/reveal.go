package renderer

import (
	"html"
	"net/url"

	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// Markup wrapped around every slide so reveal.js renders its markdown at display time
const (
	SectionOpen  = `<section data-markdown><script type="text/template">`
	SectionClose = `</script></section>`
)

// RevealRenderer builds reveal.js markup fragments
type RevealRenderer struct{}

// NewRevealRenderer creates a renderer
func NewRevealRenderer() *RevealRenderer {
	return &RevealRenderer{}
}

// PresentationFragment wraps each slide's raw lines in a markdown section.
// The lines are not escaped: the script element keeps them as text for reveal.js.
func (r *RevealRenderer) PresentationFragment(slides []entities.Slide) []string {
	fragment := make([]string, 0, len(slides)*3)
	for _, slide := range slides {
		fragment = append(fragment, SectionOpen)
		fragment = append(fragment, slide.Lines...)
		fragment = append(fragment, SectionClose)
	}
	return fragment
}

// IndexFragment builds an unordered list with one link per page
func (r *RevealRenderer) IndexFragment(pages []entities.PageEntry) []string {
	fragment := make([]string, 0, len(pages)+2)
	fragment = append(fragment, "<ul>")
	for _, page := range pages {
		fragment = append(fragment, r.indexItem(page))
	}
	return append(fragment, "</ul>")
}

func (r *RevealRenderer) indexItem(page entities.PageEntry) string {
	href := html.EscapeString(url.PathEscape(page.FileName)) + "#/"
	return `<li><a href="` + href + `">` + html.EscapeString(page.LessonName) + `</a></li>`
}

// Ensure RevealRenderer implements ports.PageRenderer
var _ ports.PageRenderer = (*RevealRenderer)(nil)
