package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompletions serves /chat/completions with the given status and body,
// recording the decoded request for assertions.
func fakeCompletions(t *testing.T, status int, body string, got *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewService_Validation(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)

	_, err = NewService(&Config{Provider: "openai"})
	assert.Error(t, err)

	svc, err := NewService(&Config{Provider: "deepseek", Model: "deepseek-chat"})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestConfig_DefaultTimeout(t *testing.T) {
	svc, err := NewService(&Config{Provider: "openai", Model: "gpt-3.5-turbo", APIKey: "k"})
	require.NoError(t, err)

	s, ok := svc.(*service)
	require.True(t, ok)
	assert.Equal(t, 120, s.timeout)
}

func TestChat(t *testing.T) {
	t.Run("returns first choice verbatim", func(t *testing.T) {
		var req map[string]any
		srv := fakeCompletions(t, http.StatusOK, `{
			"id": "c1", "object": "chat.completion", "model": "gpt-3.5-turbo",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "  first *summary*\n"}},
				{"index": 1, "message": {"role": "assistant", "content": "second"}}
			],
			"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
		}`, &req)

		svc, err := NewService(&Config{Provider: "openai", Model: "gpt-3.5-turbo", APIKey: "k", BaseURL: srv.URL})
		require.NoError(t, err)

		content, stats, err := svc.Chat(context.Background(), []Message{UserMessage("hello")})
		require.NoError(t, err)
		assert.Equal(t, "  first *summary*\n", content)
		assert.Equal(t, 17, stats.TotalTokens)

		assert.Equal(t, "gpt-3.5-turbo", req["model"])
		messages, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 1)
		assert.Equal(t, "user", messages[0].(map[string]any)["role"])
		assert.Equal(t, "hello", messages[0].(map[string]any)["content"])
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		srv := fakeCompletions(t, http.StatusOK, `{"id": "c1", "choices": []}`, nil)
		svc, err := NewService(&Config{Provider: "openai", Model: "m", APIKey: "k", BaseURL: srv.URL})
		require.NoError(t, err)

		_, _, err = svc.Chat(context.Background(), []Message{UserMessage("hello")})
		assert.Error(t, err)
	})

	t.Run("provider rejection is an error", func(t *testing.T) {
		srv := fakeCompletions(t, http.StatusUnauthorized, `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`, nil)
		svc, err := NewService(&Config{Provider: "openai", Model: "m", BaseURL: srv.URL})
		require.NoError(t, err)

		_, _, err = svc.Chat(context.Background(), []Message{UserMessage("hello")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LLM chat failed")
	})
}

func TestConvertMessages(t *testing.T) {
	out := convertMessages([]Message{
		SystemPrompt("sys"),
		UserMessage("u"),
		{Role: "assistant", Content: "a"},
		{Role: "other", Content: "o"},
	})
	require.Len(t, out, 4)
	assert.Equal(t, "system", out[0].Role)
	assert.Equal(t, "user", out[1].Role)
	assert.Equal(t, "assistant", out[2].Role)
	assert.Equal(t, "user", out[3].Role)
}
