package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/gg"
	"github.com/gorilla/mux"

	"github.com/inamate/svgchart/internal/auth"
	"github.com/inamate/svgchart/internal/chart"
	"github.com/inamate/svgchart/internal/chartapi"
	"github.com/inamate/svgchart/internal/config"
	"github.com/inamate/svgchart/internal/live"
	mw "github.com/inamate/svgchart/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	renderer := chart.NewRenderer(
		chart.WithTheme(cfg.Theme()),
		chart.WithRoundRadius(cfg.RoundRadius),
		chart.WithGradientDirection(cfg.GradientX2, cfg.GradientY2),
		chart.WithLogger(logger),
	)

	hub := live.NewHub(renderer, cfg.LiveWindow)
	go hub.Run()

	tokens := auth.NewService(cfg.TokenSecret, cfg.TokenTTL)

	chartHandler := chartapi.NewHandler(renderer, hub, tokens, chartapi.Options{
		Defaults:       cfg.ChartConfig(),
		ViewBox:        cfg.ViewBox,
		Raster:         cfg.RasterOptions(),
		AllowedOrigins: cfg.Origins(),
	})

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	chartHandler.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Disconnect live subscribers first so Shutdown does not wait on them
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
