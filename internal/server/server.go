// Package server exposes the question pipeline and dashboard over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"supplychain-insights/internal/common/config"
	"supplychain-insights/internal/common/llm"
	"supplychain-insights/internal/common/logger"
	"supplychain-insights/internal/common/validation"
	"supplychain-insights/internal/models"
	answerquestion "supplychain-insights/internal/workers/ai-conversation/answer-question"
	"supplychain-insights/internal/workers/analytics/dashboard"
	"supplychain-insights/pkg/registry"
)

type QuestionAnswerer interface {
	Execute(ctx context.Context, input *answerquestion.Input) (*models.ChatResponse, error)
	ErrorResponse(err error) *models.ErrorResponse
}

type DashboardProvider interface {
	Summary(ctx context.Context) (*dashboard.Summary, error)
}

// ModelLister reports which predictors are loaded. *predictor.Registry
// implements it.
type ModelLister interface {
	Loaded() []string
}

type Options struct {
	App          config.AppConfig
	Server       config.ServerConfig
	Answerer     QuestionAnswerer
	Dashboard    DashboardProvider
	Models       ModelLister
	Generator    llm.Generator
	Capabilities *registry.CapabilityRegistry
	Logger       logger.Logger
}

type Server struct {
	opts       Options
	router     chi.Router
	request    *validation.Validator
	clock      func() time.Time
	logger     logger.Logger
	httpServer *http.Server
}

func New(opts Options) *Server {
	if opts.Capabilities == nil {
		opts.Capabilities = registry.DefaultRegistry()
	}
	s := &Server{
		opts:    opts,
		request: validation.MustValidator(chatRequestSchema),
		clock:   time.Now,
		logger:  logger.ForComponent(opts.Logger, "http"),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.recoverer)
	r.Use(s.instrument)

	timeout := config.GetDuration(s.opts.Server.RequestTimeout)
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	r.Use(middleware.Timeout(timeout))

	origins := s.opts.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Post("/chat", s.handleChat)
	r.Get("/api/dashboard/analytics", s.handleDashboard)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.opts.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       durationOr(s.opts.Server.ReadTimeout, 30*time.Second),
		WriteTimeout:      durationOr(s.opts.Server.WriteTimeout, 150*time.Second),
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func durationOr(ms int, def time.Duration) time.Duration {
	if d := config.GetDuration(ms); d > 0 {
		return d
	}
	return def
}
