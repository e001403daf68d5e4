package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventexplorer/config"
	authadapter "eventexplorer/internal/adapters/auth"
	emailadapter "eventexplorer/internal/adapters/email"
	delivery "eventexplorer/internal/delivery/http"
	"eventexplorer/internal/delivery/http/controllers"
	"eventexplorer/internal/delivery/http/middleware"
	"eventexplorer/internal/delivery/http/pages"
	"eventexplorer/internal/repository/postgres"
	"eventexplorer/internal/services"
)

const bcryptCost = 10

// @title Event Explorer API
// @version 1.0
// @description Event listing catalog with account-based theme preferences.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Adapters
	hasher := authadapter.NewBcryptHasher(bcryptCost)
	issuer, verifier := authadapter.NewJWTSessions(cfg.SessionSecret)
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	renderer, err := pages.NewRenderer()
	if err != nil {
		logger.Error("failed to load page templates", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	// Services
	sessionTTL := time.Duration(cfg.SessionTTLDays) * 24 * time.Hour
	emailSvc := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer(), logger)
	accountSvc := services.NewAccountService(userRepo, hasher, issuer, emailSvc, logger, sessionTTL)
	catalogSvc := services.NewCatalogService(eventRepo, categoryRepo, userRepo)

	// Controllers
	secureCookies := cfg.Environment == "production"
	pagesCtrl := controllers.NewPagesController(logger, renderer)
	authCtrl := controllers.NewAuthController(logger, accountSvc, renderer, sessionTTL, secureCookies)
	eventCtrl := controllers.NewEventController(logger, catalogSvc)
	meCtrl := controllers.NewMeController(logger, catalogSvc)

	mux := delivery.NewRouter(delivery.RouterDeps{
		Pages:         pagesCtrl,
		Auth:          authCtrl,
		Events:        eventCtrl,
		Me:            meCtrl,
		Verifier:      verifier,
		LoginLimiter:  middleware.NewRateLimiter(10, time.Minute),
		SignupLimiter: middleware.NewRateLimiter(5, time.Minute),
	})

	handler := middleware.Logging(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
