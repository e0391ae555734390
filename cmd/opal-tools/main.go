// Command opal-tools runs the HTTP service exposing Optimizely
// experimentation capabilities as Opal tools.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/config"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/logger"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/router"
	"github.com/hristobakalov/hristo-opal-custom-tools/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	root := &cobra.Command{
		Use:           "opal-tools",
		Short:         "Opal custom tools for Optimizely Experimentation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the tool HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

// serve wires configuration, logging, the app container, and the
// router, then runs the HTTP server until a termination signal arrives.
func serve() error {
	bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	loggerService, err := logger.NewLoggerService(cfg, &bootstrap)
	if err != nil {
		return err
	}

	appLogger := logger.NewLogger(cfg, loggerService)

	srv, err := server.New(cfg, appLogger, loggerService)
	if err != nil {
		return err
	}

	r, err := router.New(srv)
	if err != nil {
		return err
	}
	srv.SetupHTTPServer(r)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

	case sig := <-quit:
		appLogger.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Error().Err(err).Msg("graceful shutdown failed")
			return err
		}
	}

	loggerService.Shutdown(10 * time.Second)
	appLogger.Info().Msg("server stopped")

	return nil
}
