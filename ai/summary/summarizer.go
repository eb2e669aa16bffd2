package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidRequest marks a request that fails schema validation.
	ErrInvalidRequest = errors.New("invalid summarize request")
	// ErrNotConfigured is returned when no completion provider is wired.
	ErrNotConfigured = errors.New("summarizer is not configured")
	// ErrUpstream marks a failure of the completion provider (auth, rate limit, network, malformed reply).
	ErrUpstream = errors.New("completion provider failed")
)

// Summarizer turns an ordered list of notes into generated prose.
type Summarizer interface {
	Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResponse, error)
}

// NoteInput is the part of a note that goes into the prompt. Other fields sent
// by clients are ignored.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SummarizeRequest is the body of POST /api/summarize.
type SummarizeRequest struct {
	Notes []NoteInput `json:"notes"`
}

// SummarizeResponse is the body of a successful summarize call.
type SummarizeResponse struct {
	Summary string `json:"summary"`

	TotalTokens int           `json:"-"`
	Latency     time.Duration `json:"-"`
}

// Validate checks the request shape. notes must be present; an empty list is
// summarized from the prompt header alone.
func (r *SummarizeRequest) Validate() error {
	if r == nil || r.Notes == nil {
		return fmt.Errorf("%w: notes is required", ErrInvalidRequest)
	}
	return nil
}

const promptHeader = "Summarize the following notes:\n\n"

// BuildPrompt concatenates every note's title and content in order.
func BuildPrompt(notes []NoteInput) string {
	parts := make([]string, 0, len(notes))
	for _, note := range notes {
		parts = append(parts, fmt.Sprintf("Title: %s\nContent: %s\n", note.Title, note.Content))
	}
	return promptHeader + strings.Join(parts, "\n")
}
