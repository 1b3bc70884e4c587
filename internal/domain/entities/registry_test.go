package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRegistry(t *testing.T) {
	t.Run("keeps insertion order", func(t *testing.T) {
		r := NewPageRegistry()
		r.Record("zeta", "zeta.html")
		r.Record("alpha", "alpha.html")
		r.Record("mid", "mid.html")

		assert.Equal(t, []PageEntry{
			{LessonName: "zeta", FileName: "zeta.html"},
			{LessonName: "alpha", FileName: "alpha.html"},
			{LessonName: "mid", FileName: "mid.html"},
		}, r.Entries())
		assert.Equal(t, 3, r.Len())
	})

	t.Run("re-recording keeps original position", func(t *testing.T) {
		r := NewPageRegistry()
		assert.False(t, r.Record("a", "a.html"))
		assert.False(t, r.Record("b", "b.html"))
		assert.True(t, r.Record("a", "a-new.html"))

		entries := r.Entries()
		assert.Len(t, entries, 2)
		assert.Equal(t, PageEntry{LessonName: "a", FileName: "a-new.html"}, entries[0])
		assert.True(t, r.Contains("b"))
		assert.False(t, r.Contains("c"))
	})

	t.Run("entries are a copy", func(t *testing.T) {
		r := NewPageRegistry()
		r.Record("a", "a.html")
		entries := r.Entries()
		entries[0].FileName = "changed"

		assert.Equal(t, "a.html", r.Entries()[0].FileName)
	})
}
