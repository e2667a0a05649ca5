package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/souramoo/calorie-counter-vibe/config"
	"github.com/souramoo/calorie-counter-vibe/routes"
	"github.com/souramoo/calorie-counter-vibe/services"
	"github.com/souramoo/calorie-counter-vibe/stats"
	"github.com/souramoo/calorie-counter-vibe/utils"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger settings come from config, so fall back to a bare one
		boot := bootstrapLogger(os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := utils.NewLogger("calorie-api", cfg.Environment, cfg.LogLevel)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.OpenDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database unavailable")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database connected")

	tokens, err := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("jwt setup")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mailer services.Mailer
	if cfg.MailEnabled() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load AWS config for SES")
		}
		mailer = utils.NewSESMailer(awsCfg, cfg.SESEmail)
	} else {
		log.Warn().Msg("SES not configured, password reset emails disabled")
	}

	var uploader services.ImageUploader
	if cfg.UploadsEnabled() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.StorageRegion()))
		if err != nil {
			log.Fatal().Err(err).Msg("unable to load AWS config for S3")
		}
		uploader = utils.NewS3Uploader(awsCfg, cfg.S3Bucket, cfg.CloudFrontURL)
	} else {
		log.Warn().Msg("S3 not configured, profile pictures disabled")
	}

	hub := services.NewRealtimeHub(log)
	entries := services.NewEntryService(db, hub, log)

	router := routes.SetupRouter(routes.Deps{
		DB:             db,
		Log:            log,
		Tokens:         tokens,
		Auth:           services.NewAuthService(db, tokens, mailer, log),
		Users:          services.NewUserService(db, uploader),
		Entries:        entries,
		Stats:          services.NewStatsService(entries, stats.SystemClock{}),
		Hub:            hub,
		CORSOrigins:    cfg.CORSOrigins,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// bootstrapLogger is used before the configured logger exists.
func bootstrapLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Str("service", "calorie-api").Timestamp().Logger()
}
