// ABOUTME: The serve subcommand running live filter loops behind the control API
// ABOUTME: Wires config, store, logger and client into the HTTP server

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"linkoff-engine/api"
	"linkoff-engine/api/middleware"
	"linkoff-engine/core/domain"
	"linkoff-engine/core/workers"
	"linkoff-engine/infrastructure/http/standard"
	"linkoff-engine/linkoff"
	"linkoff-engine/pkg/featureflags"
)

const banner = `
    __    _       __   ____  ________
   / /   (_)___  / /__/ __ \/ __/ __/
  / /   / / __ \/ //_/ / / / /_/ /_
 / /___/ / / / / ,< / /_/ / __/ __/
/_____/_/_/ /_/_/|_|\____/_/ /_/
`

func runServe(args []string, out io.Writer) error {
	flagSet := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	configPath := flagSet.String("config", "", "YAML file overlaying the environment configuration")
	pageURL := flagSet.String("url", domain.HomeFeedURL, "address of the starting page")
	pagePath := flagSet.String("page", "", "saved HTML page to start with")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	fmt.Fprint(out, banner+"\n")

	logger := newLogger(cfg.Log)
	logger.Info("Starting LinkOff", map[string]interface{}{
		"port":       cfg.Server.Port,
		"store_type": cfg.Store.Type,
		"period_ms":  cfg.Scan.PeriodMillis,
	})

	store, closeStore, err := openStore(cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	engineCfg, err := engineConfig(cfg, false)
	if err != nil {
		return err
	}

	flags := featureflags.NewEnvManager("")
	httpClient := standard.NewClient(30*time.Second,
		standard.WithTransport(&middleware.LoggingRoundTripper{Logger: logger}))

	opts := []linkoff.Option{
		linkoff.WithStore(store),
		linkoff.WithHTTPClient(httpClient),
		linkoff.WithLogger(logger),
		linkoff.WithEngineConfig(engineCfg),
		linkoff.WithFlags(flags),
		linkoff.WithRunLoop(workers.DefaultRunLoopConfig()),
	}
	if *pagePath != "" {
		markup, err := os.ReadFile(*pagePath)
		if err != nil {
			return fmt.Errorf("read page: %w", err)
		}
		opts = append(opts, linkoff.WithPage(*pageURL, string(markup)))
	}

	client, err := linkoff.NewClient(opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiCfg := api.APIConfig{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiCfg.RateLimit = cfg.Server.RateLimit
		apiCfg.RateWindow = cfg.RateWindow()
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiCfg)
	api.RegisterRoutes(humaAPI, client)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := client.Run(ctx); err != nil {
			errCh <- fmt.Errorf("engine: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...", nil)
	case runErr = <-errCh:
		logger.Error("Stopping after failure", map[string]interface{}{
			"error": runErr.Error(),
		})
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		if runErr == nil {
			runErr = err
		}
	}

	logger.Info("Server stopped", nil)
	return runErr
}
