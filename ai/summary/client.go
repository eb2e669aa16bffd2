package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// timeout is the default timeout for a summarize round trip.
var timeout = 120 * time.Second

// Client calls a remote summarize endpoint. It satisfies Summarizer.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL (e.g. http://localhost:28082).
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

// Summarize posts the notes to /api/summarize and returns the generated summary.
func (c *Client) Summarize(ctx context.Context, req *SummarizeRequest) (*SummarizeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal summarize request")
	}

	url := c.baseURL + "/api/summarize"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct summarize request to %s", url)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	b, status, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, statusError(url, status, b)
	}

	resp := &SummarizeResponse{}
	if err := json.Unmarshal(b, resp); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal summarize response from %s: %v", ErrUpstream, url, err)
	}
	resp.Latency = time.Since(start)
	return resp, nil
}

// FetchNotes lists every note held by the server.
func (c *Client) FetchNotes(ctx context.Context) ([]NoteInput, error) {
	url := c.baseURL + "/api/notes"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct request to %s", url)
	}

	b, status, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(url, status, b)
	}

	var list struct {
		Notes []NoteInput `json:"notes"`
	}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal notes from %s", url)
	}
	if list.Notes == nil {
		list.Notes = []NoteInput{}
	}
	return list.Notes, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to call %s", req.URL)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "failed to read response from %s", req.URL)
	}
	return b, resp.StatusCode, nil
}

func statusError(url string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		msg = e.Message
	}
	kind := ErrUpstream
	if status == http.StatusBadRequest {
		kind = ErrInvalidRequest
	}
	return fmt.Errorf("%w: %s returned status %d: %s", kind, url, status, msg)
}
