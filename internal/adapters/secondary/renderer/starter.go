package renderer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/fredcamaral/slidex/internal/domain/entities"
)

// RenderStarterTemplate renders a page template ready for slide insertion.
// revealPath is where the reveal.js checkout lives relative to the generated pages.
func RenderStarterTemplate(title, revealPath string) ([]byte, error) {
	tmpl, err := template.New("starter").Parse(starterTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing starter template: %w", err)
	}

	data := struct {
		Title      string
		RevealPath string
		Marker     template.HTML
	}{
		Title:      title,
		RevealPath: revealPath,
		Marker:     template.HTML(entities.InsertionMarker), // #nosec G203 - constant comment line
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing starter template: %w", err)
	}

	return buf.Bytes(), nil
}

const starterTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="{{.RevealPath}}/dist/reveal.css">
    <link rel="stylesheet" href="{{.RevealPath}}/dist/theme/white.css">
</head>
<body>
    <div class="reveal">
        <div class="slides">
{{.Marker}}
        </div>
    </div>
    <script src="{{.RevealPath}}/dist/reveal.js"></script>
    <script src="{{.RevealPath}}/plugin/markdown/markdown.js"></script>
    <script>
        Reveal.initialize({ hash: true, plugins: [ RevealMarkdown ] });
    </script>
</body>
</html>
`
