// Package notebook owns the note list, the tag universe and the view state
// (selected tag, search term, editing note, last summary). Every mutation goes
// through a Notebook method; callers only ever receive copies.
package notebook

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/hrygo/notekeeper/ai/summary"
	"github.com/hrygo/notekeeper/store"
)

// DefaultNoteTitle is the placeholder title of a freshly added note.
const DefaultNoteTitle = "New Note"

type Notebook struct {
	store      *store.Store
	summarizer summary.Summarizer

	mu          sync.Mutex
	selectedTag string
	searchTerm  string
	editing     *store.Note

	summary    string
	status     SummaryStatus
	generation uint64
	cancel     context.CancelFunc
}

// View is a snapshot of what the UI renders.
type View struct {
	Notes         []*store.Note
	Tags          []string
	SelectedTag   string
	SearchTerm    string
	Editing       *store.Note
	Summary       string
	SummaryStatus SummaryStatus
}

func New(s *store.Store, summarizer summary.Summarizer) *Notebook {
	return &Notebook{
		store:      s,
		summarizer: summarizer,
		status:     SummaryStatusIdle,
	}
}

// Seed fills an empty store with the welcome notes.
func (b *Notebook) Seed(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.store.ListNotes(ctx, &store.FindNote{})
	if err != nil {
		return err
	}
	if len(notes) > 0 {
		return nil
	}

	seed := []*store.Note{
		{Title: "Welcome Note", Content: "Welcome to your new note-taking app!", Tags: []string{"welcome", "getting-started"}},
		{Title: "Ideas", Content: "List of project ideas...", Tags: []string{"projects", "ideas"}},
	}
	for _, note := range seed {
		if _, err := b.store.CreateNote(ctx, note); err != nil {
			return err
		}
		for _, tag := range note.Tags {
			if _, err := b.addTagLocked(ctx, tag); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddNote appends a note with the placeholder title, empty content and no tags.
func (b *Notebook) AddNote(ctx context.Context) (*store.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.store.CreateNote(ctx, &store.Note{
		Title:   DefaultNoteTitle,
		Content: "",
		Tags:    []string{},
	})
}

// UpdateNote replaces title and content of the note with the given id.
// An unknown id is a no-op and yields a nil note.
func (b *Notebook) UpdateNote(ctx context.Context, id int32, title, content string) (*store.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.updateLocked(ctx, id, title, content)
}

func (b *Notebook) updateLocked(ctx context.Context, id int32, title, content string) (*store.Note, error) {
	note, err := b.store.UpdateNote(ctx, &store.UpdateNote{ID: id, Title: &title, Content: &content})
	if err != nil || note == nil {
		return nil, err
	}
	if b.editing != nil && b.editing.ID == id {
		b.editing = note.Clone()
	}
	return note, nil
}

// TagNote attaches a tag to a note, registering it in the tag universe when new.
// Blank tags and unknown ids are ignored.
func (b *Notebook) TagNote(ctx context.Context, id int32, raw string) (*store.Note, error) {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	note, err := b.store.GetNote(ctx, id)
	if err != nil || note == nil {
		return nil, err
	}
	if _, err := b.addTagLocked(ctx, tag); err != nil {
		return nil, err
	}
	if note.HasTag(tag) {
		return note, nil
	}
	note, err = b.store.UpdateNote(ctx, &store.UpdateNote{ID: id, Tags: append(slices.Clone(note.Tags), tag)})
	if err != nil || note == nil {
		return nil, err
	}
	if b.editing != nil && b.editing.ID == id {
		b.editing = note.Clone()
	}
	return note, nil
}

// AddTag registers a tag. Blank (after trimming) or already known tags leave
// the set unchanged and report false.
func (b *Notebook) AddTag(ctx context.Context, raw string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.addTagLocked(ctx, raw)
}

func (b *Notebook) addTagLocked(ctx context.Context, raw string) (bool, error) {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return false, nil
	}
	tags, err := b.store.ListTags(ctx)
	if err != nil {
		return false, err
	}
	if slices.Contains(tags, tag) {
		return false, nil
	}
	if err := b.store.CreateTag(ctx, tag); err != nil {
		return false, err
	}
	return true, nil
}

// SelectTag toggles the tag filter: selecting the selected tag clears it.
// The tag is trimmed like stored tags are.
func (b *Notebook) SelectTag(tag string) string {
	tag = strings.TrimSpace(tag)

	b.mu.Lock()
	defer b.mu.Unlock()

	if tag == b.selectedTag {
		b.selectedTag = ""
	} else {
		b.selectedTag = tag
	}
	return b.selectedTag
}

func (b *Notebook) SetSearchTerm(term string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.searchTerm = term
}

// EditNote marks a note as being edited. Unknown ids clear nothing and return nil.
func (b *Notebook) EditNote(ctx context.Context, id int32) (*store.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	note, err := b.store.GetNote(ctx, id)
	if err != nil || note == nil {
		return nil, err
	}
	b.editing = note
	return note.Clone(), nil
}

func (b *Notebook) CancelEdit() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.editing = nil
}

// SaveEdit writes title and content to the note being edited and ends editing.
// With nothing being edited it is a no-op.
func (b *Notebook) SaveEdit(ctx context.Context, title, content string) (*store.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.editing == nil {
		return nil, nil
	}
	note, err := b.updateLocked(ctx, b.editing.ID, title, content)
	if err != nil {
		return nil, err
	}
	b.editing = nil
	return note, nil
}

func (b *Notebook) Notes(ctx context.Context) ([]*store.Note, error) {
	return b.store.ListNotes(ctx, &store.FindNote{})
}

func (b *Notebook) Tags(ctx context.Context) ([]string, error) {
	return b.store.ListTags(ctx)
}

// View renders the filtered note list together with the current view state.
func (b *Notebook) View(ctx context.Context) (*View, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.store.ListNotes(ctx, &store.FindNote{})
	if err != nil {
		return nil, err
	}
	tags, err := b.store.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	return &View{
		Notes:         Filter(notes, b.selectedTag, b.searchTerm),
		Tags:          tags,
		SelectedTag:   b.selectedTag,
		SearchTerm:    b.searchTerm,
		Editing:       b.editing.Clone(),
		Summary:       b.summary,
		SummaryStatus: b.status,
	}, nil
}
