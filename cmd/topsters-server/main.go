package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/handiism/topsters/internal/config"
	"github.com/handiism/topsters/internal/logging"
	"github.com/handiism/topsters/internal/server"
)

func main() {
	var (
		addrFlag    = flag.String("addr", ":8080", "Listen address")
		configFlag  = flag.String("config", "", "Path to config file (default: user config dir)")
		timeoutFlag = flag.Duration("timeout", server.DefaultRequestTimeout, "Per-request render timeout")
	)
	flag.Parse()

	logging.Init(logging.ConfigFromEnv())

	configPath := *configFlag
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         *addrFlag,
		Handler:      server.New(settings, server.WithRequestTimeout(*timeoutFlag)).Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: *timeoutFlag + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("Server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logging.Err(err).Msg("Server failed")
			os.Exit(1)
		}
	case <-ctx.Done():
		logging.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Err(err).Msg("Graceful shutdown failed")
			os.Exit(1)
		}
	}
}
