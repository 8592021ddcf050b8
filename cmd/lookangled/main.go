// Command lookangled serves look-angle computations over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/paunstefan/view-angle-calculator/internal/api"
	"github.com/paunstefan/view-angle-calculator/internal/config"
	"github.com/paunstefan/view-angle-calculator/internal/logging"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	ellipsoid := cfg.Ellipsoid.Ellipsoid()

	srv := api.NewServer(cfg.Server, ellipsoid, logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			"addr", cfg.Server.Addr,
			"ellipsoid", ellipsoid.String(),
			"trust_proxy", cfg.Server.TrustProxy,
			"auth_enabled", cfg.Server.AuthToken != "",
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTPServer().Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
