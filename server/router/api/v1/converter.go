package v1

import (
	"time"

	"github.com/hrygo/notekeeper/notebook"
	"github.com/hrygo/notekeeper/store"
)

// Note is the wire form of a note.
type Note struct {
	ID         int32     `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
}

type ListNotesResponse struct {
	Notes []*Note `json:"notes"`
}

type ListTagsResponse struct {
	Tags []string `json:"tags"`
}

type CreateTagResponse struct {
	Tag   string `json:"tag"`
	Added bool   `json:"added"`
}

type NotebookResponse struct {
	Notes         []*Note  `json:"notes"`
	Tags          []string `json:"tags"`
	SelectedTag   string   `json:"selectedTag"`
	SearchTerm    string   `json:"searchTerm"`
	Editing       *Note    `json:"editing"`
	Summary       string   `json:"summary"`
	SummaryStatus string   `json:"summaryStatus"`
}

type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type TagRequest struct {
	Tag string `json:"tag"`
}

type SearchRequest struct {
	Term string `json:"term"`
}

type EditRequest struct {
	ID int32 `json:"id"`
}

type SelectTagResponse struct {
	SelectedTag string `json:"selectedTag"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func convertNoteFromStore(note *store.Note) *Note {
	if note == nil {
		return nil
	}
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Note{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		Tags:       tags,
		CreateTime: time.Unix(note.CreatedTs, 0).UTC(),
		UpdateTime: time.Unix(note.UpdatedTs, 0).UTC(),
	}
}

func convertNotesFromStore(notes []*store.Note) []*Note {
	result := make([]*Note, 0, len(notes))
	for _, note := range notes {
		result = append(result, convertNoteFromStore(note))
	}
	return result
}

func convertNotebookFromView(view *notebook.View) *NotebookResponse {
	tags := view.Tags
	if tags == nil {
		tags = []string{}
	}
	return &NotebookResponse{
		Notes:         convertNotesFromStore(view.Notes),
		Tags:          tags,
		SelectedTag:   view.SelectedTag,
		SearchTerm:    view.SearchTerm,
		Editing:       convertNoteFromStore(view.Editing),
		Summary:       view.Summary,
		SummaryStatus: string(view.SummaryStatus),
	}
}
