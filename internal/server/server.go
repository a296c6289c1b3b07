package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"memescore/internal/config"
	"memescore/internal/logging"
	"memescore/internal/metrics"
)

const shutdownTimeout = 30 * time.Second

// NewRouter creates the gin engine with common middleware and the analyzer routes.
func NewRouter(logger logging.Logger, h *AnalyzeHandler) *gin.Engine {
	router := gin.New()

	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))
	router.Use(CORSMiddleware())

	router.GET("/health", h.Health)
	router.POST("/analyze", h.Analyze)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	return router
}

// SetMode applies the configured gin mode; unknown values keep gin's default.
func SetMode(mode string) {
	switch mode {
	case gin.ReleaseMode, gin.DebugMode, gin.TestMode:
		gin.SetMode(mode)
	}
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then drains.
func Start(ctx context.Context, cfg config.ServerConfig, router http.Handler, logger logging.Logger) error {
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
