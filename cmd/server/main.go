package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aicademy/internal/config"
	"aicademy/internal/database"
	"aicademy/internal/handlers"
	"aicademy/internal/repository"
	"aicademy/internal/security"
	"aicademy/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	parentRepo := repository.NewParentRepository(db)
	kidRepo := repository.NewKidRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize services
	authService := service.NewAuthService(parentRepo, cfg.SessionDuration)
	profileService := service.NewProfileService(parentRepo, kidRepo)
	progressService := service.NewProgressService(kidRepo, sessionRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	googleOAuth := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}

	// Initialize handlers
	rateLimiter := security.NewRateLimiter(20, time.Minute)
	middleware := handlers.NewMiddleware(authService, cfg.KidTokenSecret, rateLimiter)
	authHandler := handlers.NewAuthHandler(authService, emailService, googleOAuth, cfg.OAuthRedirectBaseURL)
	kidHandler := handlers.NewKidHandler(profileService, cfg.KidTokenSecret, cfg.KidTokenTTL)
	progressHandler := handlers.NewProgressHandler(progressService, profileService)

	// Setup routes
	mux := http.NewServeMux()

	// Public auth routes
	mux.HandleFunc("POST /api/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/password/forgot", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/password/reset", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/google/start", authHandler.StartGoogleOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleOAuthCallback)

	// Protected parent routes
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/kids", middleware.RequireAuth(kidHandler.CreateKid))
	mux.HandleFunc("GET /api/kids", middleware.RequireAuth(kidHandler.ListKids))
	mux.HandleFunc("GET /api/kids/{id}/progress", middleware.RequireAuth(progressHandler.GetKidProgress))
	mux.HandleFunc("GET /api/kids/{id}/sessions", middleware.RequireAuth(progressHandler.GetKidSessions))
	mux.HandleFunc("GET /api/progress", middleware.RequireAuth(progressHandler.GetParentProgress))

	// Kid-facing routes: the picker is open on the device, logging a
	// session requires the activity token issued at selection
	mux.HandleFunc("GET /api/kid-picker", kidHandler.KidPicker)
	mux.HandleFunc("POST /api/kid-picker/{id}/select", kidHandler.SelectKid)
	mux.HandleFunc("POST /api/sessions", middleware.RequireKidToken(progressHandler.LogSession))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background maintenance
	go cleanupExpired(authService)
	go sendWeeklyDigests(emailService, progressService, parentRepo)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpired periodically removes expired auth sessions and
// password reset tokens
func cleanupExpired(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired parent sessions cleaned up")
		}

		if err := authService.CleanupExpiredPasswordResetTokens(); err != nil {
			log.Printf("Error cleaning up expired reset tokens: %v", err)
		} else {
			log.Println("Expired password reset tokens cleaned up")
		}
	}
}

// sendWeeklyDigests emails each parent a per-kid progress summary once
// a week. Skipped entirely when the email service is disabled.
func sendWeeklyDigests(emailService *service.EmailService, progressService *service.ProgressService, parentRepo *repository.ParentRepository) {
	if !emailService.IsEnabled() {
		return
	}

	ticker := time.NewTicker(7 * 24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		parents, err := parentRepo.GetAllParents()
		if err != nil {
			log.Printf("Error loading parents for weekly digest: %v", err)
			continue
		}

		for _, parent := range parents {
			progress, err := progressService.GetParentProgress(parent.ID)
			if err != nil {
				log.Printf("Error building digest for parent %d: %v", parent.ID, err)
				continue
			}
			if len(progress.Kids) == 0 {
				continue
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			err = emailService.SendWeeklyProgressEmail(ctx, parent.Email, parent.Name, progress.Kids)
			cancel()
			if err != nil {
				log.Printf("Error sending digest to parent %d: %v", parent.ID, err)
			}
		}

		log.Println("Weekly progress digests sent")
	}
}
