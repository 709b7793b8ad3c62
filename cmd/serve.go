package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khanhnv2901/headercheck/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the header check form and JSON API over HTTP",
	Long: `Start a web server with:

  GET  /                 form with one URL input and a Check button
  POST /                 runs the check and renders the result under the form
  GET  /api/v1/check     ?url=... returns the result document as JSON
  POST /api/v1/check     {"url": "..."} returns the result document as JSON
  GET  /api/v1/headers   the header watch-list
  GET  /api/v1/health    liveness`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appCtx := getAppContext(cmd)
		cfg := appCtx.Config.Serve
		logger := appCtx.Logger.Named("api")

		server := api.NewServer(api.Config{
			Auditor:     appCtx.Auditor,
			Logger:      logger,
			CORSOrigins: cfg.CORSOrigins,
			Version:     Version,
		})

		httpServer := &http.Server{
			Addr:         cfg.Addr,
			Handler:      server,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		}

		out := cmd.OutOrStdout()
		printBanner(out)

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Fprintf(out, "%s Header checker listening on http://%s\n", colorInfo("→"), cfg.Addr)
			fmt.Fprintf(out, "%s Press Ctrl+C to gracefully shutdown\n", colorInfo("→"))
			logger.Info("server_started", zap.String("addr", cfg.Addr))
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			fmt.Fprintf(out, "\n%s Received signal %v, initiating graceful shutdown...\n", colorInfo("→"), sig)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				if closeErr := httpServer.Close(); closeErr != nil {
					return fmt.Errorf("failed to gracefully shutdown server: %w (close error: %v)", err, closeErr)
				}
				return fmt.Errorf("failed to gracefully shutdown server: %w", err)
			}

			logger.Info("server_stopped")
			fmt.Fprintf(out, "%s Server shutdown complete\n", colorSuccess("✓"))
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&cliConfig.Serve.Addr, "addr", cliConfig.Serve.Addr, "address for the web form and API")
	serveCmd.Flags().DurationVar(&cliConfig.Serve.ShutdownTimeout, "shutdown-timeout", cliConfig.Serve.ShutdownTimeout, "graceful shutdown timeout")
	serveCmd.Flags().StringSliceVar(&cliConfig.Serve.CORSOrigins, "cors-origins", cliConfig.Serve.CORSOrigins, "allowed CORS origins (empty = no cross-origin access)")
}
