package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	httpapi "github.com/tbourn/go-publications-backend/internal/http"
	"github.com/tbourn/go-publications-backend/internal/jobs"
	"github.com/tbourn/go-publications-backend/internal/observability"
	"github.com/tbourn/go-publications-backend/internal/sysutil"
)

const shutdownTimeout = 15 * time.Second

// repoHandle owns the store connection for the lifetime of a command.
type repoHandle struct {
	DB *gorm.DB
}

// Close releases the underlying connection pool.
func (h *repoHandle) Close() {
	if sqlDB, err := h.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, h, err := bootstrap()
	if err != nil {
		return err
	}
	defer h.Close()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, sysutil.Version(version))
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	svc := httpapi.NewServices(h.DB, cfg)

	if cfg.StatsSchedule != "" {
		c, err := jobs.Start(cfg.StatsSchedule, &jobs.StatsRefresher{
			Counter: svc.Publications,
			Purger:  svc.Idempotency,
		})
		if err != nil {
			return err
		}
		defer func() { <-c.Stop().Done() }()
		log.Info().Str("schedule", cfg.StatsSchedule).Msg("stats job scheduled")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, svc, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return <-errCh
}
