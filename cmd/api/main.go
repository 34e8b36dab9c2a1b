package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Masty1988/my-social-flow/internal/audit"
	"github.com/Masty1988/my-social-flow/internal/http/handlers"
	httpapi "github.com/Masty1988/my-social-flow/internal/http/httpapi"
	"github.com/Masty1988/my-social-flow/internal/infra"
	"github.com/Masty1988/my-social-flow/internal/infra/geoip"
	"github.com/Masty1988/my-social-flow/internal/middleware"
	"github.com/Masty1988/my-social-flow/internal/providers/genai"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if cfg.JWTSecret == "" {
		logger.Warn().Msg("JWT_SECRET is not set; generation routes will answer 500 until configured")
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set; generation calls will answer 500 until configured")
	}
	if len(cfg.AllowedUsers) == 0 {
		logger.Warn().Msg("ALLOWED_USERS is empty; every authenticated subject will be rejected")
	}

	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable; country tagging disabled")
	} else if resolver != nil {
		lookup = resolver.CountryCode
		if closer, ok := resolver.(io.Closer); ok {
			defer closer.Close()
		}
	}

	recorder := audit.Recorder(audit.NopRecorder{})
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(context.Background(), cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		recorder = audit.NewPGRecorder(pool, logger)
	}

	client := genai.NewClient(genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		TextModel:  cfg.GeminiTextModel,
		ImageModel: cfg.GeminiImageModel,
		Logger:     &logger,
	})

	app := handlers.NewApp(cfg, logger, client, client, recorder)
	router := httpapi.NewRouter(app, lookup)
	server := infra.NewHTTPServer(cfg, router)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("server stopped")
}
