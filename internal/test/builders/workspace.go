package builders

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// DefaultTemplate is a minimal page template holding the insertion marker
const DefaultTemplate = `<html>
<body>
<div class="slides">
<!-- Slides go here -->
</div>
</body>
</html>
`

// WorkspaceBuilder lays out a working directory the way slidex expects it:
// a settings file, a page template, a lessons tree and a reveal directory
type WorkspaceBuilder struct {
	t          testing.TB
	dir        string
	framework  bool
	template   string
	properties map[string]string
	lessons    map[string]string
}

// NewWorkspaceBuilder creates a builder over a fresh temp directory
func NewWorkspaceBuilder(t testing.TB) *WorkspaceBuilder {
	return &WorkspaceBuilder{
		t:         t,
		dir:       t.TempDir(),
		framework: true,
		template:  DefaultTemplate,
		properties: map[string]string{
			"revealDirectory":  "reveal",
			"lessonsDirectory": "lessons",
			"lessonsFileRegex": "*.md",
			"template":         "template.html",
		},
		lessons: make(map[string]string),
	}
}

// WithoutFramework leaves the reveal.js checkout out of the reveal directory
func (b *WorkspaceBuilder) WithoutFramework() *WorkspaceBuilder {
	b.framework = false
	return b
}

// WithTemplate replaces the page template content
func (b *WorkspaceBuilder) WithTemplate(content string) *WorkspaceBuilder {
	b.template = content
	return b
}

// WithProperty sets a key in the settings file
func (b *WorkspaceBuilder) WithProperty(key, value string) *WorkspaceBuilder {
	b.properties[key] = value
	return b
}

// WithLesson adds a lesson file below the lessons directory
func (b *WorkspaceBuilder) WithLesson(relPath, content string) *WorkspaceBuilder {
	b.lessons[relPath] = content
	return b
}

// Build writes the workspace and returns its directory
func (b *WorkspaceBuilder) Build() string {
	b.t.Helper()

	reveal := filepath.Join(b.dir, b.properties["revealDirectory"])
	require.NoError(b.t, os.MkdirAll(reveal, 0750))
	if b.framework {
		b.write(filepath.Join(reveal, "reveal.js", "README.md"), "# reveal.js\n")
	}

	b.write(filepath.Join(b.dir, b.properties["template"]), b.template)

	lessonsDir := filepath.Join(b.dir, b.properties["lessonsDirectory"])
	require.NoError(b.t, os.MkdirAll(lessonsDir, 0750))
	for rel, content := range b.lessons {
		b.write(filepath.Join(lessonsDir, filepath.FromSlash(rel)), content)
	}

	keys := make([]string, 0, len(b.properties))
	for key := range b.properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var settings strings.Builder
	for _, key := range keys {
		settings.WriteString(key + "=" + b.properties[key] + "\n")
	}
	b.write(filepath.Join(b.dir, "SlideExtractor.properties"), settings.String())

	return b.dir
}

// Dir returns the workspace directory
func (b *WorkspaceBuilder) Dir() string {
	return b.dir
}

func (b *WorkspaceBuilder) write(path, content string) {
	b.t.Helper()
	require.NoError(b.t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(b.t, os.WriteFile(path, []byte(content), 0644))
}
