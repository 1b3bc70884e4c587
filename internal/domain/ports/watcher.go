package ports

import (
	"context"
	"time"
)

// FileWatcher reports changes below a set of lesson trees and single files.
// The channel returned by Watch is closed by Stop.
type FileWatcher interface {
	Watch(ctx context.Context, paths ...string) (<-chan FileChangeEvent, error)
	Stop() error
}

// ChangeType says what happened to a watched file
type ChangeType string

const (
	ChangeCreated  ChangeType = "created"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// FileChangeEvent is one coalesced change to a single file
type FileChangeEvent struct {
	Path      string
	Type      ChangeType
	Timestamp time.Time
}
