package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// IndexFileName is the name of the generated index page
const IndexFileName = "index.html"

// pagePerm is the mode of generated HTML pages
const pagePerm = 0o644

// Generator turns a tree of lesson files into slideshow pages plus an index page
type Generator struct {
	config   *entities.Config
	fs       ports.FileSystem
	finder   ports.LessonFinder
	renderer ports.PageRenderer
	logger   ports.Logger
	clock    ports.TimeProvider
}

// NewGenerator creates a new generator instance
func NewGenerator(
	config *entities.Config,
	fs ports.FileSystem,
	finder ports.LessonFinder,
	renderer ports.PageRenderer,
	logger ports.Logger,
) *Generator {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &Generator{
		config:   config,
		fs:       fs,
		finder:   finder,
		renderer: renderer,
		logger:   logger,
		clock:    ports.NewSystemClock(),
	}
}

// SetTimeProvider replaces the clock used for report timestamps
func (g *Generator) SetTimeProvider(clock ports.TimeProvider) {
	g.clock = clock
}

// CheckFramework verifies the slideshow framework is checked out in the output directory
func (g *Generator) CheckFramework() error {
	g.logger.Info("Checking for presence of reveal.js...")
	path := g.config.FrameworkMarkerPath()
	if !g.fs.Exists(path) {
		return &entities.FrameworkMissingError{Path: path}
	}
	g.logger.Info("Required library reveal.js is present.")
	return nil
}

// LoadTemplate reads and validates the page template
func (g *Generator) LoadTemplate() (*entities.Template, error) {
	path := g.config.TemplatePath()
	data, err := g.fs.ReadFile(path)
	if err != nil {
		return nil, &entities.ConfigError{Source: path, Message: "reading template", Cause: err}
	}

	tpl, err := entities.ParseTemplate(entities.SplitLines(string(data)))
	if err != nil {
		return nil, &entities.ConfigError{Source: path, Message: "malformed template", Cause: err}
	}

	return tpl, nil
}

// Run processes every lesson and writes the index page.
// The returned report is populated as far as the run got, even on error.
func (g *Generator) Run(ctx context.Context) (*entities.RunReport, error) {
	report := &entities.RunReport{
		RunID:     uuid.New().String(),
		StartedAt: g.clock.Now(),
		Lessons:   []entities.LessonReport{},
	}
	defer func() { report.FinishedAt = g.clock.Now() }()

	if err := g.CheckFramework(); err != nil {
		return report, err
	}

	tpl, err := g.LoadTemplate()
	if err != nil {
		return report, err
	}

	registry := entities.NewPageRegistry()
	policy := g.config.GetFailurePolicy()

	err = g.finder.FindLessons(ctx, g.config.LessonsDir(), func(path string) error {
		lesson, err := g.ProcessLesson(ctx, tpl, registry, path)
		report.Lessons = append(report.Lessons, lesson)
		if err == nil {
			return nil
		}

		var lessonErr *entities.LessonError
		if policy == entities.FailurePolicySkip && errors.As(err, &lessonErr) {
			g.logger.Error("Skipping %s: %v", path, err)
			return nil
		}
		return err
	})
	report.Pages = registry.Entries()
	if err != nil {
		return report, err
	}

	index, err := g.WriteIndex(tpl, registry)
	if err != nil {
		return report, err
	}
	report.Index = index

	return report, nil
}

// ProcessLesson parses one lesson file, writes its page and records it in registry
func (g *Generator) ProcessLesson(ctx context.Context, tpl *entities.Template, registry *entities.PageRegistry, path string) (entities.LessonReport, error) {
	g.logger.Info("Working on: %s", path)

	presentation, err := g.ParseLesson(ctx, path, true)
	lesson := entities.LessonReport{
		Lesson:      presentation.LessonName,
		Source:      path,
		Slides:      presentation.SlideCount(),
		Diagnostics: presentation.Diagnostics,
	}
	if err != nil {
		lesson.Error = err.Error()
		return lesson, err
	}

	if registry.Contains(presentation.LessonName) {
		g.logger.Warn("Lesson name %s is used more than once; %s overwrites the earlier page", presentation.LessonName, path)
	}

	target, err := g.WritePresentation(tpl, presentation)
	if err != nil {
		lesson.Error = err.Error()
		return lesson, err
	}

	registry.Record(presentation.LessonName, presentation.OutputFileName())
	lesson.Output = target

	return lesson, nil
}

// ParseLesson reads a lesson file and extracts its slides.
// When logDiagnostics is set every diagnostic is logged as it is found.
// The returned presentation is never nil.
func (g *Generator) ParseLesson(ctx context.Context, path string, logDiagnostics bool) (*entities.Presentation, error) {
	presentation := entities.NewPresentation(path)

	f, err := g.fs.Open(path)
	if err != nil {
		return presentation, &entities.LessonError{Lesson: presentation.LessonName, Op: "opening " + path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	opts := []ExtractorOption{WithMaxSlideLines(g.config.MaxSlideLines)}
	if logDiagnostics {
		opts = append(opts, WithDiagnosticHandler(func(d entities.Diagnostic) {
			g.logDiagnostic(path, d)
		}))
	}

	slides, diags, err := ExtractFromReader(ctx, f, opts...)
	presentation.Diagnostics = diags
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return presentation, ctxErr
		}
		return presentation, &entities.LessonError{Lesson: presentation.LessonName, Op: "reading " + path, Cause: err}
	}
	presentation.Slides = slides

	return presentation, nil
}

// WritePresentation splices the slide fragments into the template and writes the lesson page
func (g *Generator) WritePresentation(tpl *entities.Template, p *entities.Presentation) (string, error) {
	fragment := g.renderer.PresentationFragment(p.Slides)
	target := filepath.Join(g.config.RevealDir(), p.OutputFileName())

	g.logger.Info("Writing to: %s", target)
	content := entities.JoinLines(tpl.Splice(fragment))
	if err := g.fs.WriteFile(target, []byte(content), pagePerm); err != nil {
		return "", &entities.LessonError{Lesson: p.LessonName, Op: "writing " + target, Cause: err}
	}

	return target, nil
}

// WriteIndex writes the page linking every registered presentation
func (g *Generator) WriteIndex(tpl *entities.Template, registry *entities.PageRegistry) (string, error) {
	fragment := g.renderer.IndexFragment(registry.Entries())
	target := filepath.Join(g.config.RevealDir(), IndexFileName)

	g.logger.Info("Writing to: %s", target)
	content := entities.JoinLines(tpl.Splice(fragment))
	if err := g.fs.WriteFile(target, []byte(content), pagePerm); err != nil {
		return "", fmt.Errorf("writing index page %s: %w", target, err)
	}

	return target, nil
}

// Inspect parses every lesson without writing anything
func (g *Generator) Inspect(ctx context.Context) ([]*entities.Presentation, error) {
	presentations := []*entities.Presentation{}
	policy := g.config.GetFailurePolicy()

	err := g.finder.FindLessons(ctx, g.config.LessonsDir(), func(path string) error {
		p, err := g.ParseLesson(ctx, path, false)
		if err != nil {
			var lessonErr *entities.LessonError
			if policy == entities.FailurePolicySkip && errors.As(err, &lessonErr) {
				g.logger.Error("Skipping %s: %v", path, err)
				return nil
			}
			return err
		}
		presentations = append(presentations, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return presentations, nil
}

func (g *Generator) logDiagnostic(path string, d entities.Diagnostic) {
	if d.Severity == entities.SeverityWarning {
		g.logger.Warn("%s: %s", path, d.String())
		return
	}
	g.logger.Error("%s: %s", path, d.String())
}
