package v1

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/notekeeper/ai/summary"
	"github.com/hrygo/notekeeper/notebook"
)

// summarizeFailureMessage is the only detail a client sees when the provider fails.
const summarizeFailureMessage = "Error summarizing notes"

// Summarize handles POST /api/summarize.
func (s *APIV1Service) Summarize(c echo.Context) error {
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	var req summary.SummarizeRequest
	if err := bindJSON(c, &req); err != nil {
		slog.Warn("invalid summarize request", "request_id", requestID, "error", err)
		s.recordSummarize("invalid", 0)
		return err
	}
	if err := req.Validate(); err != nil {
		s.recordSummarize("invalid", 0)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	resp, err := s.Summarizer.Summarize(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, summary.ErrInvalidRequest) {
			s.recordSummarize("invalid", time.Since(start))
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		slog.Error("failed to summarize notes",
			"request_id", requestID,
			"notes", len(req.Notes),
			"error", err,
		)
		s.recordSummarize("error", time.Since(start))
		return echo.NewHTTPError(http.StatusInternalServerError, summarizeFailureMessage)
	}

	s.recordSummarize("success", time.Since(start))
	s.recordTokens(resp)
	return c.JSON(http.StatusOK, &summary.SummarizeResponse{Summary: resp.Summary})
}

// SummarizeNotebook handles POST /api/notebook/summarize. Only the most recent
// call updates the notebook summary; older in-flight calls get 409.
func (s *APIV1Service) SummarizeNotebook(c echo.Context) error {
	start := time.Now()
	resp, err := s.Notebook.Summarize(c.Request().Context())
	if err != nil {
		if errors.Is(err, notebook.ErrSuperseded) {
			s.recordSummarize("superseded", time.Since(start))
			return echo.NewHTTPError(http.StatusConflict, "summarize request superseded")
		}
		if errors.Is(err, summary.ErrInvalidRequest) {
			s.recordSummarize("invalid", time.Since(start))
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		s.recordSummarize("error", time.Since(start))
		return echo.NewHTTPError(http.StatusInternalServerError, summarizeFailureMessage)
	}

	s.recordSummarize("success", time.Since(start))
	s.recordTokens(resp)
	return c.JSON(http.StatusOK, &summary.SummarizeResponse{Summary: resp.Summary})
}

func (s *APIV1Service) recordSummarize(status string, latency time.Duration) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.RecordSummarize(status, latency)
}

func (s *APIV1Service) recordTokens(resp *summary.SummarizeResponse) {
	if s.Metrics == nil || resp == nil {
		return
	}
	s.Metrics.RecordLLMTokens("total", resp.TotalTokens)
}
