package summary

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/hrygo/notekeeper/ai/core/llm"
)

// Options tunes the LLM-backed summarizer.
type Options struct {
	// MaxConcurrent caps in-flight upstream calls. Default 4.
	MaxConcurrent int64
}

// llmSummarizer sends the prompt as the sole user message of a chat completion.
type llmSummarizer struct {
	llm llm.Service
	sem *semaphore.Weighted
}

// NewSummarizer creates a summarizer over the given LLM service. A nil service
// yields a summarizer that always fails with ErrNotConfigured.
func NewSummarizer(llmSvc llm.Service, opts Options) Summarizer {
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	return &llmSummarizer{
		llm: llmSvc,
		sem: semaphore.NewWeighted(opts.MaxConcurrent),
	}
}

func (s *llmSummarizer) Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, ErrNotConfigured
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	start := time.Now()
	content, stats, err := s.llm.Chat(ctx, []llm.Message{llm.UserMessage(BuildPrompt(req.Notes))})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	resp := &SummarizeResponse{
		Summary: content,
		Latency: time.Since(start),
	}
	if stats != nil {
		resp.TotalTokens = stats.TotalTokens
	}
	return resp, nil
}
