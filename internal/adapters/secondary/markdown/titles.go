package markdown

import (
	"bytes"
	"html"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// TitleExtractor derives slide titles from the first markdown heading
type TitleExtractor struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewTitleExtractor creates a goldmark backed title extractor
func NewTitleExtractor() *TitleExtractor {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // GitHub Flavored Markdown
		),
	)

	return &TitleExtractor{md: md, policy: bluemonday.StrictPolicy()}
}

// Title returns the plain text of the first heading in the slide, of any level.
// Slides without a heading are titled by position, e.g. "Slide 3".
func (t *TitleExtractor) Title(slide entities.Slide, index int) string {
	src := []byte(slide.Content())
	doc := t.md.Parser().Parse(text.NewReader(src))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			title = t.headingText(heading, src)
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if title == "" {
		return "Slide " + strconv.Itoa(index+1)
	}
	return title
}

// headingText renders the heading's inline content and strips every tag from it,
// leaving the text a reader sees with entities decoded and whitespace collapsed
func (t *TitleExtractor) headingText(heading *ast.Heading, src []byte) string {
	var buf bytes.Buffer
	for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
		if err := t.md.Renderer().Render(&buf, src, c); err != nil {
			return ""
		}
	}

	plain := html.UnescapeString(t.policy.Sanitize(buf.String()))
	return strings.Join(strings.Fields(plain), " ")
}

// Ensure TitleExtractor implements ports.TitleExtractor
var _ ports.TitleExtractor = (*TitleExtractor)(nil)
