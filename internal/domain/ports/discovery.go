package ports

import "context"

// LessonFinder enumerates lesson files under a root directory.
// visit is called once per matching file; returning an error stops the walk
// and that error is returned from FindLessons.
type LessonFinder interface {
	FindLessons(ctx context.Context, root string, visit func(path string) error) error
}
