package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/voyage/api/internal/cache"
	"github.com/forgo/voyage/api/internal/config"
	"github.com/forgo/voyage/api/internal/database"
	"github.com/forgo/voyage/api/internal/handler"
	"github.com/forgo/voyage/api/internal/mailer"
	"github.com/forgo/voyage/api/internal/middleware"
	"github.com/forgo/voyage/api/internal/repository"
	"github.com/forgo/voyage/api/internal/service"
	"github.com/forgo/voyage/api/pkg/jwt"
)

// tokenSigner adapts the JWT service to the signer interface the auth
// service expects.
type tokenSigner struct {
	jwt *jwt.Service
}

func (t tokenSigner) Sign(userID, email string, name *string) (string, error) {
	claims := jwt.Claims{
		UserID: userID,
		Email:  email,
	}
	claims.Subject = userID
	if name != nil {
		claims.Name = *name
	}
	return t.jwt.Sign(claims)
}

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize mailer
	notifier, err := mailer.New(mailer.Config{
		Enabled:  cfg.SMTP.Enabled,
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		slog.Error("failed to initialize mailer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize side cache for itinerary reads
	itineraryCache := cache.New(cache.Config{
		Capacity: cfg.Cache.Capacity,
		Shards:   cfg.Cache.Shards,
		TTL:      cfg.Cache.TTL,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	itineraryRepo := repository.NewItineraryRepository(db)

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: userRepo,
		Signer:   tokenSigner{jwt: jwtService},
		Notifier: notifier,
	})

	itineraryService := service.NewItineraryService(service.ItineraryServiceConfig{
		Repo:         itineraryRepo,
		Cache:        itineraryCache,
		Notifier:     notifier,
		ShareBaseURL: cfg.Share.BaseURL,
	})

	// Initialize rate limiters. The api limiter guards the whole surface;
	// the auth limiter wraps only the credential endpoints.
	apiLimiter := middleware.NewAPILimiter()
	defer apiLimiter.Stop()

	authLimiter := middleware.NewAuthLimiter()
	defer authLimiter.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	itineraryHandler := handler.NewItineraryHandler(itineraryService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Auth endpoints (public, tighter rate limit)
	authRateLimit := middleware.RateLimit(authLimiter)
	mux.Handle("POST /v1/auth/register", authRateLimit(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /v1/auth/login", authRateLimit(http.HandlerFunc(authHandler.Login)))

	// Shared view endpoint (public)
	mux.HandleFunc("GET /v1/itineraries/share/{shareableId}", itineraryHandler.GetShared)

	// Itinerary endpoints (protected)
	authMiddleware := middleware.Auth(jwtService)
	mux.Handle("POST /v1/itineraries", authMiddleware(http.HandlerFunc(itineraryHandler.Create)))
	mux.Handle("GET /v1/itineraries", authMiddleware(http.HandlerFunc(itineraryHandler.List)))
	mux.Handle("GET /v1/itineraries/{id}", authMiddleware(http.HandlerFunc(itineraryHandler.Get)))
	mux.Handle("PUT /v1/itineraries/{id}", authMiddleware(http.HandlerFunc(itineraryHandler.Update)))
	mux.Handle("DELETE /v1/itineraries/{id}", authMiddleware(http.HandlerFunc(itineraryHandler.Delete)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(apiLimiter),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
