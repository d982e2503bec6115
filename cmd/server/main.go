package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dogcafe6ix/dogcafe-api/internal/server/config"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/handler"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/repository"
	"github.com/dogcafe6ix/dogcafe-api/internal/server/usecase"
	"github.com/dogcafe6ix/dogcafe-api/shared/auth"
	"github.com/dogcafe6ix/dogcafe-api/shared/mailer"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Str("service", "dogcafe-api").
		Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg(".env file not found, using environment variables")
	}

	cfg := config.NewServerConfig(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	codeRepo := repository.NewVerificationCodeMongoRepository(ctx, &logger, db)
	planRepo := repository.NewPlanMongoRepository(db)
	bookingRepo := repository.NewBookingMongoRepository(ctx, &logger, db)
	postRepo := repository.NewPostMongoRepository(ctx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	codeMailer := mailer.NewMailer(&logger)
	if codeMailer == nil {
		logger.Warn().Msg("SMTP not configured, verification codes will be logged")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, codeRepo, jwtAuth, codeMailer, cfg, &logger)
	userUsecase := usecase.NewUserUsecase(userRepo)
	planUsecase := usecase.NewPlanUsecase(planRepo, &logger)
	bookingUsecase := usecase.NewBookingUsecase(bookingRepo, planRepo, userRepo)
	postUsecase := usecase.NewPostUsecase(postRepo, userRepo)

	if err := planUsecase.SeedDefaultPlans(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed default plans")
	}

	router := handler.NewRouter(
		handler.NewAuthenticator(authUsecase, &logger),
		handler.NewAuthHandler(authUsecase, &logger),
		handler.NewUserHandler(userUsecase, &logger),
		handler.NewPlanHandler(planUsecase, &logger),
		handler.NewBookingHandler(bookingUsecase, &logger),
		handler.NewPostHandler(postUsecase, &logger),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
