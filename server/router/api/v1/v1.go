package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/hrygo/notekeeper/ai/metrics"
	"github.com/hrygo/notekeeper/ai/summary"
	"github.com/hrygo/notekeeper/internal/profile"
	"github.com/hrygo/notekeeper/notebook"
)

type APIV1Service struct {
	Profile    *profile.Profile
	Notebook   *notebook.Notebook
	Summarizer summary.Summarizer
	Metrics    *metrics.PrometheusExporter
}

func NewAPIV1Service(profile *profile.Profile, nb *notebook.Notebook, summarizer summary.Summarizer, exporter *metrics.PrometheusExporter) *APIV1Service {
	return &APIV1Service{
		Profile:    profile,
		Notebook:   nb,
		Summarizer: summarizer,
		Metrics:    exporter,
	}
}

// summarizeOtherMethods are answered with 405 on the summarize route.
var summarizeOtherMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// RegisterRoutes registers the JSON API with the given Echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.POST("/summarize", s.Summarize, s.summarizeRateLimiter())
	api.Match(summarizeOtherMethods, "/summarize", s.MethodNotAllowed)

	api.GET("/notes", s.ListNotes)
	api.POST("/notes", s.CreateNote)
	api.GET("/notes/rss", s.NotesRSS)
	api.PUT("/notes/:id", s.UpdateNote)
	api.POST("/notes/:id/tags", s.TagNote)

	api.GET("/tags", s.ListTags)
	api.POST("/tags", s.CreateTag)

	api.GET("/notebook", s.GetNotebook)
	api.PUT("/notebook/search", s.SetSearchTerm)
	api.POST("/notebook/tag", s.SelectTag)
	api.POST("/notebook/editing", s.EditNote)
	api.DELETE("/notebook/editing", s.CancelEdit)
	api.POST("/notebook/editing/save", s.SaveEdit)
	api.POST("/notebook/summarize", s.SummarizeNotebook, s.summarizeRateLimiter())
}

// summarizeRateLimiter limits summarize calls per client IP. A non-positive
// rate disables limiting.
func (s *APIV1Service) summarizeRateLimiter() echo.MiddlewareFunc {
	if s.Profile == nil || s.Profile.SummarizeRPS <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(s.Profile.SummarizeRPS),
		Burst:     s.Profile.SummarizeBurst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, _ error) error {
			slog.Warn("summarize rate limit exceeded", "ip", identifier)
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
		},
	})
}
