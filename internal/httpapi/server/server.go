package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/teamdir/teamdir/internal/httpapi/handlers"
	"github.com/teamdir/teamdir/internal/httpapi/middleware"
	"github.com/teamdir/teamdir/pkg/config"
)

type APIServer struct {
	config *config.AppConfig
	router *gin.Engine
	server *http.Server
}

func NewAPIServer(cfg *config.AppConfig, h *handlers.Handlers) *APIServer {
	if cfg.App.Environment == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(&cfg.APIServer))

	s := &APIServer{
		config: cfg,
		router: router,
	}

	s.setupRoutes(h)
	return s
}

func (s *APIServer) setupRoutes(h *handlers.Handlers) {
	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(s.config))

	v1.GET("/status", h.Status)

	v1.GET("/users", h.ListUsers)
	v1.GET("/users/:id", h.GetUser)
	v1.POST("/users", h.CreateUser)
	v1.PATCH("/users/:id", h.UpdateUser)
	v1.DELETE("/users/:id", h.DeleteUser)

	v1.GET("/roles", h.ListRoles)
	v1.GET("/roles/:id", h.GetRole)
	v1.POST("/roles", h.CreateRole)
	v1.PATCH("/roles/:id", h.UpdateRole)
	v1.DELETE("/roles/:id", h.DeleteRole)
}

// Start serves until the context is cancelled, then shuts down gracefully.
func (s *APIServer) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.APIServer.Host, s.config.APIServer.Port),
		Handler: s.router,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.WithField("address", s.server.Addr).Info("starting http API server")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start http API server : %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("turning down http API server")
		if err := s.server.Shutdown(context.Background()); err != nil {
			logrus.WithError(err).Error("Error during HTTP API server shutdown")
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logrus.Info("http API server stopped")
	return nil
}
