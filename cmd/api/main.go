// Package main wires the concert tracker API together: Postgres storage,
// the Ticketmaster and OpenAI adapters, SES email, and the HTTP router.
//
// @title TrackMyGig API
// @version 1.0
// @description Concert tracking backend: search, favorites, wishlists, journal, reviews, and ticket alerts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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
	"golang.org/x/crypto/bcrypt"

	"trackmygig/config"
	authadapter "trackmygig/internal/adapters/auth"
	emailadapter "trackmygig/internal/adapters/email"
	"trackmygig/internal/adapters/openai"
	"trackmygig/internal/adapters/ticketmaster"
	delivery "trackmygig/internal/delivery/http"
	"trackmygig/internal/delivery/http/controllers"
	"trackmygig/internal/delivery/http/middleware"
	"trackmygig/internal/domain"
	"trackmygig/internal/repository/postgres"
	"trackmygig/internal/services"
)

const (
	serviceTimeout     = 10 * time.Second
	httpClientTimeout  = 15 * time.Second
	readHeaderTimeout  = 5 * time.Second
	shutdownTimeout    = 10 * time.Second
	ticketmasterAPIURL = "https://app.ticketmaster.com/discovery/v2"
	openAIAPIURL       = "https://api.openai.com/v1"
)

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("database open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("database ping failed", "err", err)
		os.Exit(1)
	}

	// Repositories
	concertRepo := postgres.NewConcertRepository(db)
	userRepo := postgres.NewUserRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	wishlistRepo := postgres.NewWishlistRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	journalRepo := postgres.NewJournalRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Adapters
	httpClient := &http.Client{Timeout: httpClientTimeout}
	fetcher := ticketmaster.NewHTTPFetcher(httpClient, ticketmasterAPIURL, cfg.TicketmasterAPIKey)
	var completions domain.CompletionClient
	if cfg.OpenAIAPIKey != "" {
		completions = openai.NewHTTPClient(httpClient, openAIAPIURL, cfg.OpenAIAPIKey)
	}
	hasher := authadapter.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("mailer init failed", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())
	notificationService := services.NewNotificationService(notificationRepo, userRepo, emailService, logger, serviceTimeout)
	concertService := services.NewConcertService(concertRepo, userRepo, fetcher, completions, serviceTimeout)
	authService := services.NewAuthService(userRepo, hasher, tokenIssuer, emailService, logger, cfg.TokenExpiry, serviceTimeout)
	userService := services.NewUserService(userRepo, serviceTimeout)
	favoriteService := services.NewFavoriteService(favoriteRepo, concertService, notificationService, logger, serviceTimeout)
	wishlistService := services.NewWishlistService(wishlistRepo, concertService, notificationService, logger, serviceTimeout)
	reviewService := services.NewReviewService(reviewRepo, concertRepo, serviceTimeout)
	journalService := services.NewJournalService(journalRepo, concertRepo, notificationService, logger, serviceTimeout)
	assistantService := services.NewAssistantService(userRepo, fetcher, completions, serviceTimeout)

	// HTTP
	mux := delivery.NewRouter(delivery.Controllers{
		Auth:         controllers.NewAuthController(logger, authService),
		Concert:      controllers.NewConcertController(logger, concertService),
		Favorite:     controllers.NewFavoriteController(logger, favoriteService),
		Wishlist:     controllers.NewWishlistController(logger, wishlistService),
		Review:       controllers.NewReviewController(logger, reviewService),
		Journal:      controllers.NewJournalController(logger, journalService),
		Notification: controllers.NewNotificationController(logger, notificationService),
		Profile:      controllers.NewProfileController(logger, userService),
		Chat:         controllers.NewChatController(logger, assistantService),
	}, tokenVerifier)

	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
	logger.Info("server stopped")
}
