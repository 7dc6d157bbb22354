package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"newsletter-api/internal/auth"
	"newsletter-api/internal/config"
	"newsletter-api/internal/db"
	"newsletter-api/internal/email"
	apihttp "newsletter-api/internal/http"
	"newsletter-api/internal/repository"
	"newsletter-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, cfg); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	credentialRepo := repository.NewPgCredentialRepository(pool)
	subscriberRepo := repository.NewPgSubscriberRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	switch cfg.EmailBackend {
	case "ses":
		sender, err := email.NewSESSender(ctx, cfg.EmailSender)
		if err != nil {
			logger.Warn("ses sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	case "smtp":
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.EmailSender, cfg.EmailSenderName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	emailTimeout := time.Duration(cfg.EmailTimeoutMillis) * time.Millisecond
	verifier := auth.NewVerifier(logger, credentialRepo)
	subscriptionSvc := service.NewSubscriptionService(logger, subscriberRepo, emailSender, cfg.BaseURL, emailTimeout)
	newsletterSvc := service.NewNewsletterService(logger, subscriberRepo, emailSender, emailTimeout)

	subscriptionHandler := apihttp.NewSubscriptionHandler(logger, subscriptionSvc)
	newsletterHandler := apihttp.NewNewsletterHandler(logger, newsletterSvc)
	router := apihttp.NewRouter(logger, verifier, subscriptionHandler, newsletterHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
