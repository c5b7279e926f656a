package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	_ "creator-api/docs/swagger"
	"creator-api/internal/config"
	"creator-api/internal/domain/user"
	"creator-api/internal/infrastructure"
	middleware "creator-api/internal/interfaces/httpserver/middlewares"
	v1 "creator-api/internal/interfaces/httpserver/routes/v1"
)

const readinessTimeout = 2 * time.Second

type HTTPServer struct {
	engine  *gin.Engine
	infra   *infrastructure.Infrastructure
	v1Route *v1.V1Route
	users   *user.Service
	config  *config.Config
}

func (s *HTTPServer) bindSwagger() {
	if !s.config.EnableSwagger {
		return
	}
	s.engine.GET("/api/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func NewHttpServer(
	v1Route *v1.V1Route,
	users *user.Service,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	if !config.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	server := HTTPServer{
		gin.New(),
		infra,
		v1Route,
		users,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.CORSMiddleware())
	server.engine.Use(gin.Recovery())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	server.engine.GET("/readyz", server.readyz)

	server.bindSwagger()
	server.registerRoutes()
	return &server
}

func (s *HTTPServer) registerRoutes() {
	root := s.engine.Group("/")
	s.v1Route.RegisterPublicRouter(root, s.readyz)

	protected := s.engine.Group("/")
	protected.Use(
		middleware.AuthMiddleware(s.infra.JWTValidator, s.users, s.infra.Logger),
		middleware.RateLimitMiddleware(s.infra.RateLimiter, s.infra.Logger),
	)
	s.v1Route.RegisterRouter(protected)
}

// Handler exposes the router, mainly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// readyz reports 503 until the key set is loaded and the stores answer.
func (s *HTTPServer) readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	checks := gin.H{}
	ready := true

	if s.infra.JWTValidator != nil && s.infra.JWTValidator.Ready() {
		checks["jwks"] = "ok"
	} else {
		checks["jwks"] = "not loaded"
		ready = false
	}

	if s.infra.DB != nil {
		sqlDB, err := s.infra.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			checks["database"] = err.Error()
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}

	if s.infra.Redis != nil {
		if err := s.infra.Redis.Ping(ctx).Err(); err != nil {
			// reported only; the limiter falls back to memory
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// Run serves the API and the metrics endpoint until ctx is cancelled, then
// shuts both down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.HTTPPort),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.MetricsPort),
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range []*http.Server{apiServer, metricsServer} {
		g.Go(func() error {
			s.infra.Logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		s.infra.Logger.Info().Msg("shutting down HTTP servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return errors.Join(apiServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	return g.Wait()
}
