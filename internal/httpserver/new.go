package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"time-tracking-assistant/internal/middleware"
	"time-tracking-assistant/internal/tracker"
	tgDelivery "time-tracking-assistant/internal/tracker/delivery/telegram"
	"time-tracking-assistant/pkg/log"
)

// Pinger reports database reachability. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware

	// Storage
	db Pinger

	// Tracker domain
	telegramHandler tgDelivery.Handler
	trackerUC       tracker.UseCase
	apiEnabled      bool
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	Middleware  middleware.Middleware

	DB Pinger

	// TelegramHandler is nil in long-polling mode.
	TelegramHandler tgDelivery.Handler
	// TrackerUseCase backs the REST API, which is only mounted when APIEnabled.
	TrackerUseCase tracker.UseCase
	APIEnabled     bool
}

// New creates a new HTTPServer instance with all routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		mw:              cfg.Middleware,
		db:              cfg.DB,
		telegramHandler: cfg.TelegramHandler,
		trackerUC:       cfg.TrackerUseCase,
		apiEnabled:      cfg.APIEnabled,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	srv.mapHandlers()

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.apiEnabled && srv.trackerUC == nil {
		return errors.New("tracker use case is required when the API is enabled")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
