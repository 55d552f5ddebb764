package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZQisAmalou/v2x-log-server/common/logging"
	"github.com/ZQisAmalou/v2x-log-server/internal/ingest"
	"github.com/ZQisAmalou/v2x-log-server/internal/nodes"
	"github.com/ZQisAmalou/v2x-log-server/internal/parser"
	"github.com/ZQisAmalou/v2x-log-server/internal/server"
	"github.com/ZQisAmalou/v2x-log-server/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP/WebSocket log server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		registry := parser.NewRegistry()
		ingestService := ingest.New(cfg.Paths.Roots(), registry, cfg.Ingest.SyntheticCount)
		aggregator := nodes.New(cfg.Paths.Certificate, cfg.Paths.QCA, cfg.Paths.Communications, ingestService, cfg.Ingest.NodeLogLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var watcher *watch.Watcher
		if cfg.Watch.Enabled {
			watcher, err = watch.New(cfg.Paths.Roots(), registry, cfg.Watch.BufferSize)
			if err != nil {
				slog.Warn("change watching unavailable", "error", err)
			} else {
				go watcher.Start(ctx)
			}
		}

		srv := server.New(ingestService, aggregator, watcher, logging.Default())

		httpServer := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      srv.Router(cfg.Server.AllowedOrigins),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}

		go func() {
			slog.Info("log server listening",
				slog.String("addr", httpServer.Addr),
				slog.String("log_level", cfg.Logging.Level),
			)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("server error", "error", err)
				os.Exit(1)
			}
		}()

		<-ctx.Done()

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.WriteTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
