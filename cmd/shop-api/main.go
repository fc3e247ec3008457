package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinema-app/shop-api/internal/api"
	mongodb "github.com/cinema-app/shop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cinema-app/shop-api/internal/infrastructure/db/redis"
	"github.com/cinema-app/shop-api/internal/infrastructure/mail"
	"github.com/cinema-app/shop-api/internal/infrastructure/queue"
	"github.com/cinema-app/shop-api/internal/pkg/config"
	"github.com/cinema-app/shop-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUsername,
		Password: cfg.Email.SMTPPassword,
		From:     cfg.Email.From,
		HostURL:  cfg.HostURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client failed")
	}

	guard := redisdb.NewMailGuard(rdb, cfg.TokenTTL())
	dispatcher := queue.NewDispatcher(cfg.Email.Workers, mailer, guard, logger.For("mail-dispatcher"))
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, dispatcher, cfg.TokenTTL(), log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("shop api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
