package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/synapses/navigator/internal/config"
	"github.com/synapses/navigator/pkg/lifecycle"
)

// httpServer runs the net/http server in a goroutine and drains it
// through a lifecycle shutdown hook.
type httpServer struct {
	srv             *http.Server
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

func newHTTPServer(cfg *config.ServerConfig, handler http.Handler, logger *slog.Logger) *httpServer {
	return &httpServer{
		srv: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeoutDuration(),
			WriteTimeout: cfg.WriteTimeoutDuration(),
		},
		logger:          logger.With("system", "http"),
		shutdownTimeout: cfg.ShutdownTimeoutDuration(),
	}
}

func (h *httpServer) Start(lc *lifecycle.Coordinator) error {
	go func() {
		h.logger.Info("server listening", "addr", h.srv.Addr)
		if err := h.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("server error", "error", err)
		}
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		h.logger.Info("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.srv.Shutdown(ctx); err != nil {
			h.logger.Error("server shutdown error", "error", err)
			return
		}
		h.logger.Info("server shutdown complete")
	})

	return nil
}
