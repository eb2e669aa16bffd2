package summary

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/notekeeper/ai/core/llm"
)

type mockLLM struct {
	mu       sync.Mutex
	messages [][]llm.Message
	reply    string
	err      error
	block    chan struct{}
	inflight atomic.Int32
	peak     atomic.Int32
}

func (m *mockLLM) Chat(ctx context.Context, messages []llm.Message) (string, *llm.LLMCallStats, error) {
	n := m.inflight.Add(1)
	defer m.inflight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	m.mu.Lock()
	m.messages = append(m.messages, messages)
	m.mu.Unlock()

	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return "", nil, ctx.Err()
		}
	}
	if m.err != nil {
		return "", nil, m.err
	}
	return m.reply, &llm.LLMCallStats{TotalTokens: 42}, nil
}

func (*mockLLM) Warmup(context.Context) {}

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name  string
		notes []NoteInput
		want  string
	}{
		{
			name:  "single note",
			notes: []NoteInput{{Title: "T1", Content: "C1"}},
			want:  "Summarize the following notes:\n\nTitle: T1\nContent: C1\n",
		},
		{
			name:  "notes joined by blank line in order",
			notes: []NoteInput{{Title: "A", Content: "<p>x</p>"}, {Title: "B", Content: ""}},
			want:  "Summarize the following notes:\n\nTitle: A\nContent: <p>x</p>\n\nTitle: B\nContent: \n",
		},
		{
			name:  "no notes",
			notes: nil,
			want:  "Summarize the following notes:\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPrompt(tt.notes))
		})
	}
}

func TestSummarizeRequest_Validate(t *testing.T) {
	var nilReq *SummarizeRequest
	assert.ErrorIs(t, nilReq.Validate(), ErrInvalidRequest)
	assert.ErrorIs(t, (&SummarizeRequest{}).Validate(), ErrInvalidRequest)
	assert.NoError(t, (&SummarizeRequest{Notes: []NoteInput{}}).Validate())
	assert.NoError(t, (&SummarizeRequest{Notes: []NoteInput{{}}}).Validate())
}

func TestLLMSummarizer_Summarize(t *testing.T) {
	t.Run("sends prompt as sole user message and returns reply verbatim", func(t *testing.T) {
		m := &mockLLM{reply: " The notes cover T1.\n"}
		s := NewSummarizer(m, Options{})

		resp, err := s.Summarize(context.Background(), &SummarizeRequest{Notes: []NoteInput{{Title: "T1", Content: "C1"}}})
		require.NoError(t, err)
		assert.Equal(t, " The notes cover T1.\n", resp.Summary)
		assert.Equal(t, 42, resp.TotalTokens)

		require.Len(t, m.messages, 1)
		require.Len(t, m.messages[0], 1)
		assert.Equal(t, "user", m.messages[0][0].Role)
		assert.Equal(t, "Summarize the following notes:\n\nTitle: T1\nContent: C1\n", m.messages[0][0].Content)
	})

	t.Run("empty note list sends the header only", func(t *testing.T) {
		m := &mockLLM{reply: "Nothing to summarize."}
		s := NewSummarizer(m, Options{})

		resp, err := s.Summarize(context.Background(), &SummarizeRequest{Notes: []NoteInput{}})
		require.NoError(t, err)
		assert.Equal(t, "Nothing to summarize.", resp.Summary)

		require.Len(t, m.messages, 1)
		assert.Equal(t, "Summarize the following notes:\n\n", m.messages[0][0].Content)
	})

	t.Run("upstream failure", func(t *testing.T) {
		s := NewSummarizer(&mockLLM{err: errors.New("401 unauthorized")}, Options{})
		_, err := s.Summarize(context.Background(), &SummarizeRequest{Notes: []NoteInput{{Title: "T1"}}})
		assert.ErrorIs(t, err, ErrUpstream)
	})

	t.Run("not configured", func(t *testing.T) {
		s := NewSummarizer(nil, Options{})
		_, err := s.Summarize(context.Background(), &SummarizeRequest{Notes: []NoteInput{{Title: "T1"}}})
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("invalid request never reaches upstream", func(t *testing.T) {
		m := &mockLLM{}
		s := NewSummarizer(m, Options{})
		_, err := s.Summarize(context.Background(), &SummarizeRequest{})
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Empty(t, m.messages)
	})

	t.Run("cancelled context is not reported as upstream failure", func(t *testing.T) {
		m := &mockLLM{block: make(chan struct{})}
		s := NewSummarizer(m, Options{})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Summarize(ctx, &SummarizeRequest{Notes: []NoteInput{{Title: "T1"}}})
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrUpstream)
	})
}

func TestLLMSummarizer_ConcurrencyCap(t *testing.T) {
	m := &mockLLM{reply: "ok", block: make(chan struct{})}
	s := NewSummarizer(m, Options{MaxConcurrent: 2})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Summarize(context.Background(), &SummarizeRequest{Notes: []NoteInput{{Title: "T"}}})
		}()
	}

	require.Eventually(t, func() bool { return m.inflight.Load() == 2 }, time.Second, 5*time.Millisecond)
	close(m.block)
	wg.Wait()
	assert.Equal(t, int32(2), m.peak.Load())
}
