package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clintrovert/octoscope/internal/api/mcp"
	"github.com/clintrovert/octoscope/internal/api/rest"
	"github.com/clintrovert/octoscope/internal/config"
	"github.com/clintrovert/octoscope/internal/github"
	"github.com/clintrovert/octoscope/internal/tools"
)

const (
	serverName    = "octoscope"
	serverVersion = "1.0.0"
)

var debug bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "octoscope",
		Short:        "GitHub read adapter speaking MCP and JSON-RPC over HTTP",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.AddCommand(newServeCmd(), newStdioCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON-RPC endpoint over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			registry, err := buildRegistry(cfg, logger)
			if err != nil {
				return err
			}

			return runHTTP(cfg, registry, logger)
		},
	}
}

func newStdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync()

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			registry, err := buildRegistry(cfg, logger)
			if err != nil {
				return err
			}

			srv, err := mcp.NewServer(registry, serverName, serverVersion, logger)
			if err != nil {
				return err
			}
			return srv.ServeStdio()
		},
	}
}

func newLogger() (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// buildRegistry wires the client, service and tool surface together.
func buildRegistry(cfg *config.Config, logger *zap.Logger) (*tools.Registry, error) {
	client, err := github.NewClient(cfg.GitHubAPIURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create github client: %w", err)
	}

	registry := tools.NewRegistry()
	service := github.NewService(client, cfg.GitHubToken, logger)
	if err := tools.NewGitHubTools(service).RegisterAll(registry); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return registry, nil
}

func runHTTP(cfg *config.Config, registry *tools.Registry, logger *zap.Logger) error {
	handler := rest.NewHandler(registry, serverName, serverVersion, logger)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	handler.RegisterRoutes(router)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server",
			zap.String("address", addr),
			zap.Bool("demo_mode", cfg.GitHubToken == github.DemoToken),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-sigChan:
	}

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
