package ports

import "github.com/fredcamaral/slidex/internal/domain/entities"

// PageRenderer produces the markup fragments spliced into the page template
type PageRenderer interface {
	// PresentationFragment wraps every slide for the slideshow framework, in order
	PresentationFragment(slides []entities.Slide) []string

	// IndexFragment builds the list of links to the generated pages, in order
	IndexFragment(pages []entities.PageEntry) []string
}

// TitleExtractor derives a human readable title from slide content
type TitleExtractor interface {
	Title(slide entities.Slide, index int) string
}
