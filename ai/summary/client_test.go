package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Summarize(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/summarize", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			var req SummarizeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, []NoteInput{{Title: "T1", Content: "C1"}}, req.Notes)

			_ = json.NewEncoder(w).Encode(map[string]string{"summary": "a summary"})
		}))
		defer srv.Close()

		c := NewClient(srv.URL+"/", nil)
		resp, err := c.Summarize(context.Background(), &SummarizeRequest{Notes: []NoteInput{{Title: "T1", Content: "C1"}}})
		require.NoError(t, err)
		assert.Equal(t, "a summary", resp.Summary)
	})

	t.Run("server error surfaces message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"Error summarizing notes"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, nil).Summarize(context.Background(), &SummarizeRequest{Notes: []NoteInput{{Title: "T1"}}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUpstream)
		assert.Contains(t, err.Error(), "Error summarizing notes")
	})

	t.Run("bad request maps to invalid request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"notes is required"}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, nil).Summarize(context.Background(), &SummarizeRequest{Notes: []NoteInput{{Title: "T1"}}})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("validates before sending", func(t *testing.T) {
		_, err := NewClient("http://127.0.0.1:0", nil).Summarize(context.Background(), &SummarizeRequest{})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestClient_FetchNotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/notes", r.URL.Path)
		_, _ = w.Write([]byte(`{"notes":[{"id":1,"title":"A","content":"x","tags":["foo"]}]}`))
	}))
	defer srv.Close()

	notes, err := NewClient(srv.URL, nil).FetchNotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []NoteInput{{Title: "A", Content: "x"}}, notes)
}
