package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	. "email-intake/internal"
	"email-intake/internal/config"
	"email-intake/internal/storage"
	"email-intake/internal/submission"
)

const shutdownTimeout = 5 * time.Second

var serverCmd = &cobra.Command{
	Use:     "server",
	Aliases: []string{"serve"},
	Short:   "Start the submission HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := ServerMain(cmd.Context(), cfg, provider); err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	},
}

// Initialize logger
func initLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		println("Invalid log level in config, defaulting to INFO")
	}
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	slog.Debug("Logger initialized", "level", level.String())
	return logger
}

func ServerMain(ctx context.Context, cfg *config.Config, storageProvider storage.Provider) error {
	if cfg == nil {
		panic("Config not initialized.")
	}
	if storageProvider == nil {
		return errors.New("storage provider is nil")
	}

	initLogger(cfg)

	svc := submission.NewService(storageProvider)
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: HTTPServer(cfg, svc),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server is running", "listen", cfg.Listen, "storage", cfg.Storage.Type)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
