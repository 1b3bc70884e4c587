package entities

import "time"

// LessonReport summarizes how a single lesson was processed
type LessonReport struct {
	Lesson      string       `json:"lesson" yaml:"lesson"`
	Source      string       `json:"source" yaml:"source"`
	Output      string       `json:"output,omitempty" yaml:"output,omitempty"`
	Slides      int          `json:"slides" yaml:"slides"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Error       string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Skipped returns true if the lesson failed and no page was written for it
func (l LessonReport) Skipped() bool {
	return l.Error != ""
}

// RunReport summarizes one generation run
type RunReport struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time      `json:"finished_at" yaml:"finished_at"`
	Lessons    []LessonReport `json:"lessons" yaml:"lessons"`
	Pages      []PageEntry    `json:"pages" yaml:"pages"`
	Index      string         `json:"index,omitempty" yaml:"index,omitempty"`
}

// Duration returns how long the run took
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SkippedCount returns the number of lessons that failed under the skip policy
func (r *RunReport) SkippedCount() int {
	n := 0
	for _, l := range r.Lessons {
		if l.Skipped() {
			n++
		}
	}
	return n
}

// DiagnosticCount returns the number of diagnostics across all lessons
func (r *RunReport) DiagnosticCount() int {
	n := 0
	for _, l := range r.Lessons {
		n += len(l.Diagnostics)
	}
	return n
}
