// ABOUTME: The serve command runs the HTTP API
// ABOUTME: Shuts down gracefully on SIGINT or SIGTERM

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"digests-reader/api"
	"digests-reader/bootstrap"
	"github.com/urfave/cli/v2"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the reader over HTTP",
		Description: `Serve the source catalog, selection and feed over HTTP.
		The OpenAPI document is available at /openapi.json and docs at /docs.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
				EnvVars: []string{"PORT"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if ctx.IsSet("port") {
				cfg.Server.Port = ctx.String("port")
			}

			app, err := bootstrap.New(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			server, err := api.NewServer(ctx.Context, app, version)
			if err != nil {
				return err
			}
			defer server.Close()

			srv := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      server.Router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: app.LoadDeadline() + 5*time.Second,
				IdleTimeout:  60 * time.Second,
			}

			sigCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("HTTP server starting", map[string]interface{}{
					"address": srv.Addr,
					"version": version,
				})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-sigCtx.Done():
			}

			app.Logger.Info("Shutting down server...", nil)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}

			app.Logger.Info("Server stopped", nil)
			return nil
		},
	}
}
