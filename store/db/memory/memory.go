// Package memory implements an in-process store driver. Nothing survives a restart.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/hrygo/notekeeper/store"
)

type DB struct {
	mu     sync.RWMutex
	notes  []*store.Note
	tags   []string
	nextID int32
}

func NewDB() store.Driver {
	return &DB{nextID: 1}
}

func (*DB) Migrate(context.Context) error {
	return nil
}

func (*DB) Close() error {
	return nil
}

func (d *DB) CreateNote(_ context.Context, create *store.Note) (*store.Note, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	note := create.Clone()
	note.ID = d.nextID
	d.nextID++
	now := time.Now().Unix()
	note.CreatedTs = now
	note.UpdatedTs = now
	d.notes = append(d.notes, note)
	return note.Clone(), nil
}

func (d *DB) UpdateNote(_ context.Context, update *store.UpdateNote) (*store.Note, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	idx := slices.IndexFunc(d.notes, func(n *store.Note) bool { return n.ID == update.ID })
	if idx < 0 {
		return nil, nil
	}

	note := d.notes[idx].Clone()
	if update.Title != nil {
		note.Title = *update.Title
	}
	if update.Content != nil {
		note.Content = *update.Content
	}
	if update.Tags != nil {
		note.Tags = slices.Clone(update.Tags)
	}
	note.UpdatedTs = time.Now().Unix()
	d.notes[idx] = note
	return note.Clone(), nil
}

func (d *DB) ListNotes(_ context.Context, find *store.FindNote) ([]*store.Note, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := make([]*store.Note, 0, len(d.notes))
	for _, note := range d.notes {
		if find != nil && find.ID != nil && note.ID != *find.ID {
			continue
		}
		list = append(list, note.Clone())
	}
	return list, nil
}

func (d *DB) CreateTag(_ context.Context, tag string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !slices.Contains(d.tags, tag) {
		d.tags = append(d.tags, tag)
	}
	return nil
}

func (d *DB) ListTags(context.Context) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return slices.Clone(d.tags), nil
}
