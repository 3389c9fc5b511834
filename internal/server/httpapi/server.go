// Package httpapi serves the Daily Diet REST API over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/logging"
	"github.com/dmitrijs2005/dailydiet/internal/server/config"
	"github.com/dmitrijs2005/dailydiet/internal/server/metrics"
	"github.com/dmitrijs2005/dailydiet/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type Server struct {
	address         string
	logger          logging.Logger
	users           *services.UserService
	diets           *services.DietService
	store           Pinger
	metrics         *metrics.Metrics
	validate        *validator.Validate
	cookieSecure    bool
	corsOrigins     []string
	shutdownTimeout time.Duration
	now             func() time.Time

	engine *gin.Engine
}

// NewServer builds the server and its router. It fails only on invalid CORS
// settings.
func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, ds *services.DietService, store Pinger, m *metrics.Metrics) (*Server, error) {
	if m == nil {
		m = metrics.New()
	}
	s := &Server{
		address:         cfg.EndpointAddrHTTP,
		logger:          l.With("module", "http_server"),
		users:           us,
		diets:           ds,
		store:           store,
		metrics:         m,
		validate:        newValidator(),
		cookieSecure:    cfg.CookieSecure,
		corsOrigins:     cfg.CORSAllowedOrigins,
		shutdownTimeout: cfg.ShutdownTimeout,
		now:             time.Now,
	}

	engine, err := s.newRouter()
	if err != nil {
		return nil, err
	}
	s.engine = engine
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully waiting at
// most the configured timeout for in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
