package notebook

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hrygo/notekeeper/ai/summary"
	"github.com/hrygo/notekeeper/store"
)

// SummaryStatus is the summarize state machine: idle -> requesting -> idle.
type SummaryStatus string

const (
	SummaryStatusIdle       SummaryStatus = "idle"
	SummaryStatusRequesting SummaryStatus = "requesting"
)

// ErrSuperseded is returned to a summarize call whose result was discarded
// because a newer call started before it finished.
var ErrSuperseded = errors.New("summarize request superseded by a newer one")

// Summarize summarizes all notes. Only the most recent call may set the
// displayed summary: starting a new call cancels the one in flight. On failure
// the previous summary stays in place.
func (b *Notebook) Summarize(ctx context.Context) (*summary.SummarizeResponse, error) {
	b.mu.Lock()
	notes, err := b.store.ListNotes(ctx, &store.FindNote{})
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}
	if b.cancel != nil {
		b.cancel()
	}
	b.generation++
	generation := b.generation
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.status = SummaryStatusRequesting
	b.mu.Unlock()
	defer cancel()

	resp, err := b.summarize(ctx, notes)

	b.mu.Lock()
	defer b.mu.Unlock()

	if generation != b.generation {
		return nil, ErrSuperseded
	}
	b.cancel = nil
	b.status = SummaryStatusIdle
	if err != nil {
		slog.Warn("failed to summarize notes", "notes", len(notes), "error", err)
		return nil, err
	}
	b.summary = resp.Summary
	return resp, nil
}

func (b *Notebook) summarize(ctx context.Context, notes []*store.Note) (*summary.SummarizeResponse, error) {
	if b.summarizer == nil {
		return nil, summary.ErrNotConfigured
	}
	req := &summary.SummarizeRequest{Notes: make([]summary.NoteInput, 0, len(notes))}
	for _, note := range notes {
		req.Notes = append(req.Notes, summary.NoteInput{Title: note.Title, Content: note.Content})
	}
	return b.summarizer.Summarize(ctx, req)
}
