package store

import (
	"context"
	"slices"
)

// Note is a titled, tagged, rich-text user record.
type Note struct {
	ID int32

	// Standard fields
	CreatedTs int64
	UpdatedTs int64

	// Domain specific fields
	Title   string
	Content string
	// Tags references the tag universe by value. Nothing keeps the two in sync.
	Tags []string
}

// Clone returns a deep copy so callers never share the tag slice with the store.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	clone := *n
	clone.Tags = slices.Clone(n.Tags)
	if clone.Tags == nil {
		clone.Tags = []string{}
	}
	return &clone
}

// HasTag reports whether the note carries the exact tag.
func (n *Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

type FindNote struct {
	ID *int32
}

type UpdateNote struct {
	ID      int32
	Title   *string
	Content *string
	// Tags replaces the tag list when non-nil.
	Tags []string
}

func (s *Store) CreateNote(ctx context.Context, create *Note) (*Note, error) {
	return s.driver.CreateNote(ctx, create)
}

// UpdateNote replaces the note with the given id. It returns nil, nil when no such note exists.
func (s *Store) UpdateNote(ctx context.Context, update *UpdateNote) (*Note, error) {
	return s.driver.UpdateNote(ctx, update)
}

func (s *Store) ListNotes(ctx context.Context, find *FindNote) ([]*Note, error) {
	return s.driver.ListNotes(ctx, find)
}

// GetNote returns nil, nil when the note does not exist.
func (s *Store) GetNote(ctx context.Context, id int32) (*Note, error) {
	list, err := s.ListNotes(ctx, &FindNote{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
