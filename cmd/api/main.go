package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rdpaiva/future-self/internal/genai"
	"github.com/rdpaiva/future-self/internal/http/handlers"
	httpapi "github.com/rdpaiva/future-self/internal/http/httpapi"
	"github.com/rdpaiva/future-self/internal/infra"
	"github.com/rdpaiva/future-self/internal/infra/credentials"
	"github.com/rdpaiva/future-self/internal/session"
	"github.com/rdpaiva/future-self/internal/storage"
	"github.com/rdpaiva/future-self/internal/store"
	"github.com/rdpaiva/future-self/internal/vision"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	creds := credentials.NewStore(runner)

	// Generation stack. The API key resolves env first, then the DB
	// credential store.
	client := genai.NewClient(genai.Options{
		APIKey:  cfg.GoogleAPIKey,
		KeyFunc: creds.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Logger:  &logger,
	})
	normalizer := vision.NewNormalizer(nil)
	gateway := vision.NewGateway(client, normalizer, logger)

	objects, err := newObjectStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	handoff, err := newHandoff(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize session handoff")
	}

	app := &handlers.App{
		Gateway:        gateway,
		Normalizer:     normalizer,
		Store:          store.NewManifestations(runner, objects, cfg.StorageBaseURL, normalizer, logger),
		Objects:        objects,
		Handoff:        handoff,
		Logger:         logger,
		StorageBaseURL: cfg.StorageBaseURL,
	}

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// newObjectStore prefers the hosted S3-compatible bucket and falls back to
// local files for development.
func newObjectStore(ctx context.Context, cfg *infra.Config) (storage.ObjectStore, error) {
	if cfg.StorageEndpoint != "" {
		return storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:        cfg.StorageEndpoint,
			Region:          cfg.StorageRegion,
			AccessKeyID:     cfg.StorageAccessKey,
			SecretAccessKey: cfg.StorageSecretKey,
			Bucket:          cfg.StorageBucket,
			PublicBaseURL:   cfg.StorageBaseURL,
		})
	}
	return storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
}

// newHandoff backs the preselect slot with Redis when configured, so the slot
// survives replica restarts; otherwise an in-process TTL map.
func newHandoff(ctx context.Context, cfg *infra.Config) (session.HandoffSlot, error) {
	const ttl = 10 * time.Minute
	if cfg.RedisAddr != "" {
		client, err := session.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		return session.NewRedisHandoff(client, ttl), nil
	}
	return session.NewMemoryHandoff(ttl), nil
}
