// File: cmd/hioload-http/serve.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-http/api"
	"github.com/momentics/hioload-http/logging"
	"github.com/momentics/hioload-http/server"
)

type serveFlags struct {
	config    string
	addr      string
	logLevel  string
	logFormat string
}

func newServeCmd() *cobra.Command {
	var f serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo routes until interrupted",
		Example: `  hioload-http serve
  hioload-http serve --addr 127.0.0.1:9000 --log-level debug
  hioload-http serve --config server.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&f.addr, "addr", "", "bind address (default 127.0.0.1:8000)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "log format: text or json")
	return cmd
}

// loadConfig layers explicitly set flags over the file over the defaults.
func loadConfig(cmd *cobra.Command, f serveFlags) (*server.Config, error) {
	cfg := server.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = server.LoadConfig(f.config); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = f.addr
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	return cfg, cfg.Validate()
}

func serve(parent context.Context, cfg *server.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: logging.ParseFormat(cfg.Log.Format),
		Output: os.Stderr,
	})
	slog.SetDefault(logger)

	srv := server.NewServer(cfg,
		server.WithLogger(logger),
		server.WithMiddleware(server.AccessLog(logger)),
	)
	if err := registerDemo(srv); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(context.Background()) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("forced shutdown", "error", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, api.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped", "state", srv.Debug().DumpState())
	return nil
}
