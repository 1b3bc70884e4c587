package entities

// PageEntry maps a lesson to the HTML page generated for it
type PageEntry struct {
	LessonName string `json:"lesson" yaml:"lesson"`
	FileName   string `json:"file" yaml:"file"`
}

// PageRegistry records the pages written during one run in insertion order.
// Recording a lesson again replaces its file name but keeps its position.
type PageRegistry struct {
	entries []PageEntry
	index   map[string]int
}

// NewPageRegistry creates an empty registry
func NewPageRegistry() *PageRegistry {
	return &PageRegistry{
		index: make(map[string]int),
	}
}

// Record stores the page for a lesson and reports whether the lesson was already present
func (r *PageRegistry) Record(lessonName, fileName string) bool {
	if i, ok := r.index[lessonName]; ok {
		r.entries[i].FileName = fileName
		return true
	}

	r.index[lessonName] = len(r.entries)
	r.entries = append(r.entries, PageEntry{LessonName: lessonName, FileName: fileName})
	return false
}

// Contains returns true if the lesson has a recorded page
func (r *PageRegistry) Contains(lessonName string) bool {
	_, ok := r.index[lessonName]
	return ok
}

// Entries returns a copy of the recorded pages in insertion order
func (r *PageRegistry) Entries() []PageEntry {
	out := make([]PageEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of recorded pages
func (r *PageRegistry) Len() int {
	return len(r.entries)
}
