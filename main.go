package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raushankrgupta/music-profile-api/api"
	"github.com/raushankrgupta/music-profile-api/cache"
	"github.com/raushankrgupta/music-profile-api/config"
	"github.com/raushankrgupta/music-profile-api/events"
	"github.com/raushankrgupta/music-profile-api/recommend"
	"github.com/raushankrgupta/music-profile-api/service"
	"github.com/raushankrgupta/music-profile-api/store"
	"github.com/raushankrgupta/music-profile-api/utils"
	"github.com/rs/zerolog/log"
)

func main() {
	config.LoadConfig()
	utils.InitLogger(config.LogLevel)

	ctx := context.Background()

	profileStore := store.NewMongoStore(store.MongoConfig{
		URI:            config.MongoURI,
		Database:       config.MongoDB,
		Collection:     config.MongoColl,
		ConnectTimeout: config.RequestTimeout,
	})
	// The store reconnects lazily, so a cold database only delays startup checks.
	if err := profileStore.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("MongoDB not reachable at startup, will retry on first request")
	} else if err := profileStore.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create database indexes")
	}

	opts := []service.Option{service.WithPageCap(config.PageCap)}

	profileCache, err := cache.NewProfileCache(ctx, config.RedisAddr, config.RedisPassword, config.CacheTTL)
	if err != nil {
		log.Warn().Err(err).Msg("Profile cache disabled")
	} else if profileCache != nil {
		opts = append(opts, service.WithCache(profileCache))
		defer profileCache.Close()
	}

	publisher, err := events.NewEventPublisher(config.RabbitMQURI, config.RabbitMQExchange)
	if err != nil {
		log.Warn().Err(err).Msg("Event publishing disabled")
	} else {
		opts = append(opts, service.WithPublisher(publisher))
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing event publisher")
			}
		}()
	}

	if config.GeminiAPIKey != "" {
		suggester, err := recommend.NewGeminiSuggester(ctx, config.GeminiAPIKey, config.GeminiModel)
		if err != nil {
			log.Warn().Err(err).Msg("AI suggestions disabled")
		} else {
			opts = append(opts, service.WithSuggester(suggester))
			defer suggester.Close()
		}
	}

	profileService := service.NewProfileService(profileStore, opts...)
	handler := api.NewProfileHandler(profileService, config.RequestTimeout)

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           api.NewRouter(handler, config.AllowedOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		log.Info().Msgf("Usage: curl \"http://localhost:%s/profiles?search=<term>\"", config.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down HTTP server")
	}
	if err := profileStore.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error disconnecting from MongoDB")
	}
	log.Info().Msg("Server shutdown complete")
}
