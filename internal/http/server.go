package http

import (
	stdhttp "net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"stacknova/site/internal/assets"
	"stacknova/site/internal/auth"
	"stacknova/site/internal/content"
	"stacknova/site/internal/docstore"
	"stacknova/site/internal/intake"
)

// Options configures the HTTP server wiring.
type Options struct {
	Content     *content.Service
	Intake      *intake.Service
	Auth        *auth.Authenticator
	Assets      *assets.Resolver
	Docstore    docstore.Store
	Database    *gorm.DB
	Logger      *logrus.Logger
	SentryHub   *sentry.Hub
	RateLimiter RateLimiterSettings
}

// RateLimiterSettings configures the HTTP rate limiter behaviour.
type RateLimiterSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

// Server wires the HTTP transport layer via Huma and templ components.
type Server struct {
	api         huma.API
	mux         *stdhttp.ServeMux
	content     *content.Service
	intake      *intake.Service
	auth        *auth.Authenticator
	assets      *assets.Resolver
	docstore    docstore.Store
	db          *gorm.DB
	logger      *logrus.Logger
	sentry      *sentry.Hub
	rateLimiter *RateLimiter
}

// NewServer constructs the HTTP server.
func NewServer(opts Options) (*Server, error) {
	if opts.Content == nil {
		return nil, eris.New("content service is required")
	}
	if opts.Intake == nil {
		return nil, eris.New("intake service is required")
	}
	if opts.Auth == nil {
		return nil, eris.New("authenticator is required")
	}
	if opts.Assets == nil {
		return nil, eris.New("asset resolver is required")
	}
	if opts.Database == nil {
		return nil, eris.New("database is required")
	}

	mux := stdhttp.NewServeMux()
	config := huma.DefaultConfig("StackNova", "1.0.0")

	api := humago.New(mux, config)

	srv := &Server{
		api:      api,
		mux:      mux,
		content:  opts.Content,
		intake:   opts.Intake,
		auth:     opts.Auth,
		assets:   opts.Assets,
		docstore: opts.Docstore,
		db:       opts.Database,
		logger:   opts.Logger,
		sentry:   opts.SentryHub,
	}

	settings := opts.RateLimiter
	if settings.Burst <= 0 {
		return nil, eris.New("rate limiter burst must be greater than zero")
	}
	if settings.RequestsPerSecond <= 0 {
		return nil, eris.New("rate limiter requests per second must be greater than zero")
	}
	if settings.ClientTTL <= 0 {
		return nil, eris.New("rate limiter client TTL must be greater than zero")
	}

	srv.rateLimiter = NewRateLimiter(settings.Burst, settings.RequestsPerSecond, settings.ClientTTL)

	srv.registerMiddlewares()
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the underlying HTTP handler for wiring into the application.
func (s *Server) Handler() stdhttp.Handler {
	return s.mux
}

// API exposes the underlying Huma API instance.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) registerMiddlewares() {
	s.api.UseMiddleware(
		s.sentryMiddleware(),
		s.recoveryMiddleware(),
		s.requestIDMiddleware(),
		s.rateLimitMiddleware(),
		s.loggingMiddleware(),
	)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /favicon.ico", faviconHandler)
	s.mux.HandleFunc("HEAD /favicon.ico", faviconHandler)
	s.mux.HandleFunc("GET /fallback.jpg", fallbackImageHandler)
	s.mux.HandleFunc("HEAD /fallback.jpg", fallbackImageHandler)

	s.registerStaticRoute()

	s.registerSiteRoutes()
	s.registerIntakeRoutes()
	s.registerAdminRoutes()
	s.registerHealthRoute()
}

func (s *Server) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mux.ServeHTTP(w, r)
}
