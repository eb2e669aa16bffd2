package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/hrygo/notekeeper/ai/core/llm"
	"github.com/hrygo/notekeeper/ai/metrics"
	"github.com/hrygo/notekeeper/ai/summary"
	"github.com/hrygo/notekeeper/internal/profile"
	"github.com/hrygo/notekeeper/notebook"
	apiv1 "github.com/hrygo/notekeeper/server/router/api/v1"
	"github.com/hrygo/notekeeper/server/router/frontend"
	"github.com/hrygo/notekeeper/store"
)

type Server struct {
	Profile  *profile.Profile
	Store    *store.Store
	Notebook *notebook.Notebook

	echoServer *echo.Echo
	httpServer *http.Server
	metrics    *metrics.PrometheusExporter
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	s := &Server{
		Profile: profile,
		Store:   store,
		metrics: metrics.NewPrometheusExporter(metrics.DefaultConfig()),
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.HTTPErrorHandler = apiv1.HTTPErrorHandler
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: shortuuid.New,
	}))
	echoServer.Use(s.requestLogger)
	s.echoServer = echoServer

	var llmService llm.Service
	if profile.IsAIEnabled() {
		service, err := llm.NewService(&llm.Config{
			Provider: profile.LLMProvider,
			Model:    profile.LLMModel,
			APIKey:   profile.LLMAPIKey,
			BaseURL:  profile.LLMBaseURL,
			Timeout:  profile.LLMTimeout,
		})
		if err != nil {
			slog.Warn("Failed to initialize LLM service",
				"provider", profile.LLMProvider,
				"error", err,
				"note", "Summarize will fail until the LLM is configured",
			)
		} else {
			slog.Info("LLM service initialized",
				"provider", profile.LLMProvider,
				"model", profile.LLMModel,
			)
			llmService = service
			// Warmup LLM connection asynchronously to reduce first-request latency.
			go func() {
				warmupCtx, warmupCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer warmupCancel()
				service.Warmup(warmupCtx)
			}()
		}
	} else {
		slog.Info("AI features disabled", "enabled", false)
	}

	summarizer := summary.NewSummarizer(llmService, summary.Options{
		MaxConcurrent: int64(profile.SummarizeMaxConcurrent),
	})
	s.Notebook = notebook.New(store, summarizer)
	if profile.Seed {
		if err := s.Notebook.Seed(ctx); err != nil {
			return nil, errors.Wrap(err, "failed to seed notebook")
		}
	}

	echoServer.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, &apiv1.HealthResponse{Status: "ok"})
	})
	echoServer.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	apiV1Service := apiv1.NewAPIV1Service(profile, s.Notebook, summarizer, s.metrics)
	apiV1Service.RegisterRoutes(echoServer)

	// Register the frontend last so API routes take precedence.
	frontend.NewFrontendService(profile).Serve(ctx, echoServer)

	return s, nil
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}

	s.httpServer = &http.Server{
		Handler:           s.echoServer,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start echo server", "error", err)
		}
	}()

	slog.Info("http server started", "addr", listener.Addr().String())
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	slog.Info("server shutting down")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
		}
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close database", slog.String("error", err.Error()))
	}

	slog.Info("notekeeper stopped properly")
}

// requestLogger logs every request and records it in the HTTP metrics.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}
		duration := time.Since(start)

		req := c.Request()
		status := c.Response().Status
		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RecordHTTPRequest(req.Method, route, status)

		slog.Info("http request",
			"method", req.Method,
			"uri", req.RequestURI,
			"status", status,
			"duration", duration,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		return nil
	}
}
