package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/booking-scheduler/internal/audit"
	"github.com/BruksfildServices01/booking-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/booking-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/booking-scheduler/internal/jobs"
	"github.com/BruksfildServices01/booking-scheduler/internal/logger"
	"github.com/BruksfildServices01/booking-scheduler/internal/mailer"
	"github.com/BruksfildServices01/booking-scheduler/internal/media"
	"github.com/BruksfildServices01/booking-scheduler/internal/routes"
	"github.com/BruksfildServices01/booking-scheduler/internal/session"
	"github.com/BruksfildServices01/booking-scheduler/internal/timezone"
	ucVerification "github.com/BruksfildServices01/booking-scheduler/internal/usecase/verification"
	"github.com/BruksfildServices01/booking-scheduler/internal/validators"
)

func main() {

	cfg := config.Load()
	logger.Setup("booking-scheduler", cfg.LogLevel)

	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			slog.Error("invalid APP_TIMEZONE", "timezone", cfg.Timezone, "error", err)
			os.Exit(1)
		}
		timezone.SetLocation(loc)
	}

	if err := validators.Register(); err != nil {
		slog.Error("failed to register validators", "error", err)
		os.Exit(1)
	}

	db := dbpkg.NewDB(cfg)

	// -------- sessions --------
	var store session.Store = session.NewMemoryStore()
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			slog.Error("failed to connect redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		store = session.NewRedisStore(client)
	} else {
		slog.Warn("REDIS_ADDR not set, sessions are kept in memory")
	}
	sessions := session.NewManager(store, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	// -------- mail --------
	var sender mailer.Sender = mailer.LogSender{}
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
		})
	}

	// -------- images --------
	var storage media.Uploader
	if cfg.S3Bucket != "" {
		storage = media.NewS3Storage(media.S3Config{
			Bucket:        cfg.S3Bucket,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Endpoint:      cfg.S3Endpoint,
			PublicBaseURL: cfg.S3PublicBaseURL,
		})
	}

	// -------- audit / verification / jobs --------
	auditDispatcher := audit.NewDispatcher(audit.New(db))
	verification := ucVerification.NewService(infraRepo.NewVerificationGormRepository(db), sender)

	scheduler := jobs.NewScheduler(
		verification,
		infraRepo.NewReminderGormRepository(db),
		sender,
		time.Duration(cfg.ReminderLeadMinutes)*time.Minute,
	)
	if err := scheduler.Start(); err != nil {
		slog.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}

	// -------- http --------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:           db,
		Config:       cfg,
		Sessions:     sessions,
		Mailer:       sender,
		Audit:        auditDispatcher,
		Verification: verification,
		Storage:      storage,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
	scheduler.Stop()
	auditDispatcher.Close()
}
