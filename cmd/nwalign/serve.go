package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aria-lang/nwalign/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

// newServeCmd is for running the HTTP API.
func newServeCmd(a *app) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Scoring defaults, the path ceiling, the sequence length cap and server
timeouts come from the config file and NWALIGN_ environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context())
		},
	}

	flags := serveCmd.Flags()
	flags.String("host", "localhost", "host to bind to")
	flags.Int("port", 8080, "port to listen on")

	// Bind the parameters to viper
	a.v.BindPFlag("server.host", flags.Lookup("host"))
	a.v.BindPFlag("server.port", flags.Lookup("port"))

	return serveCmd
}

func (a *app) runServe(ctx context.Context) error {
	srv := a.cfg.Server
	server := &http.Server{
		Addr:         srv.Addr(),
		Handler:      api.NewRouter(a.cfg, a.logger),
		ReadTimeout:  srv.ReadTimeout,
		WriteTimeout: srv.WriteTimeout,
		IdleTimeout:  srv.IdleTimeout,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		a.logger.Info("server is shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		done <- server.Shutdown(shutdownCtx)
	}()

	a.logger.Info("nwalign API server starting", "addr", "http://"+srv.Addr())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-done; err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}
