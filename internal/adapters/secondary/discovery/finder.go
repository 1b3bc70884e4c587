package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

// DefaultMaxDepth is how deep below the lessons directory files are looked for
const DefaultMaxDepth = 3

// GlobFinder yields regular files whose base name matches a glob pattern,
// walking at most maxDepth levels below the root in lexical order.
type GlobFinder struct {
	pattern  string
	maxDepth int
}

// NewGlobFinder creates a finder for pattern. An invalid pattern is a configuration error.
func NewGlobFinder(pattern string, maxDepth int) (*GlobFinder, error) {
	pattern = strings.TrimSpace(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, &entities.ConfigError{
			Source:  "lessonsFileRegex",
			Message: fmt.Sprintf("invalid file pattern %q", pattern),
			Cause:   doublestar.ErrBadPattern,
		}
	}
	if maxDepth < 1 {
		maxDepth = DefaultMaxDepth
	}

	return &GlobFinder{
		pattern:  pattern,
		maxDepth: maxDepth,
	}, nil
}

// Matches returns true if the base name of path matches the pattern
func (f *GlobFinder) Matches(path string) bool {
	ok, err := doublestar.Match(f.pattern, filepath.Base(path))
	return err == nil && ok
}

// FindLessons walks root and calls visit for every matching file
func (f *GlobFinder) FindLessons(ctx context.Context, root string, visit func(path string) error) error {
	var visitErr error
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		depth := f.depth(root, path)
		if d.IsDir() {
			if depth >= f.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || depth > f.maxDepth || !f.Matches(path) {
			return nil
		}

		visitErr = visit(path)
		return visitErr
	})

	switch {
	case err == nil:
		return nil
	case visitErr != nil:
		return visitErr
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("walking lessons directory %s: %w", root, err)
	}
}

// depth counts the path elements of path below root; root itself is depth 0
func (f *GlobFinder) depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// Ensure GlobFinder implements ports.LessonFinder
var _ ports.LessonFinder = (*GlobFinder)(nil)
