package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-cards/api"
	"weather-cards/config"
	"weather-cards/datasource"
	"weather-cards/forecast"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration from .env, config.yaml and WEATHER_* variables
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Command line flags override the loaded configuration
	port := flag.Int("port", cfg.Server.Port, "Port to run the server on")
	enableRateLimiting := flag.Bool("rate-limit", cfg.RateLimit.Enabled, "Enable API rate limiting")
	flag.Parse()
	cfg.Server.Port = *port
	cfg.RateLimit.Enabled = *enableRateLimiting

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.Server.GinMode)

	owmProvider := datasource.NewOpenWeatherMapProvider(cfg.OpenWeatherMap.APIKey)
	owmProvider.SetBaseURL(cfg.OpenWeatherMap.BaseURL)
	owmProvider.SetTimeout(cfg.OpenWeatherMap.Timeout)

	var source datasource.ForecastSource = owmProvider
	if cfg.RateLimit.Enabled {
		source = datasource.NewRateLimitedForecastSource(owmProvider, cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		logger.Info("applied rate limiting to provider",
			"provider", owmProvider.Name(),
			"rps", cfg.RateLimit.RPS,
			"burst", cfg.RateLimit.Burst,
		)
	}

	fetcher := forecast.NewFetcher(source, logger)
	presenter := api.NewPresenter(fetcher, logger)

	server, err := api.NewServer(presenter, cfg.Server.Port, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	// Set up channel for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	// Show the default city on first load
	go func() {
		outcome := presenter.Search(context.Background(), cfg.App.DefaultCity)
		logger.Info("initial search complete", "city", cfg.App.DefaultCity, "outcome", outcome.String())
	}()

	// Start the server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case sig := <-shutdownChan:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	logger.Info("shutdown complete")
}
