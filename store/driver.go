package store

import (
	"context"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	Migrate(ctx context.Context) error
	Close() error

	// Note model related methods.
	CreateNote(ctx context.Context, create *Note) (*Note, error)
	UpdateNote(ctx context.Context, update *UpdateNote) (*Note, error)
	ListNotes(ctx context.Context, find *FindNote) ([]*Note, error)

	// Tag model related methods.
	CreateTag(ctx context.Context, tag string) error
	ListTags(ctx context.Context) ([]string, error)
}
