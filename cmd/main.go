package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/farmlearn/backend/docs"
	authmw "github.com/farmlearn/backend/internal/auth/middleware"
	authservice "github.com/farmlearn/backend/internal/auth/service"
	"github.com/farmlearn/backend/internal/config"
	"github.com/farmlearn/backend/internal/handlers"
	"github.com/farmlearn/backend/internal/logger"
	"github.com/farmlearn/backend/internal/middleware"
	"github.com/farmlearn/backend/internal/repositories"
	"github.com/farmlearn/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title FarmLearn Lessons API
// @version 1.0
// @description API for localized farming lessons, progression and rewards

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting FarmLearn Lessons Service")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize JWT token generator
	tokenGenerator := authservice.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Initialize repositories
	lessonRepo := repositories.NewLessonRepository(db, logger.Logger)
	completionRepo := repositories.NewCompletionRepository(db, logger.Logger)
	profileRepo := repositories.NewProfileRepository(db, logger.Logger)
	quizRepo := repositories.NewQuizRepository(db, logger.Logger)
	rewardRepo := repositories.NewRewardRepository(db, logger.Logger)

	// Initialize services
	lessonService := services.NewLessonService(lessonRepo, completionRepo, logger.Logger)
	completionService := services.NewCompletionService(lessonRepo, completionRepo, profileRepo, logger.Logger)
	quizService := services.NewQuizService(quizRepo, lessonRepo, logger.Logger)
	rewardService := services.NewRewardService(rewardRepo, logger.Logger)
	profileService := services.NewProfileService(profileRepo, logger.Logger)

	// Initialize handlers
	lessonsHandler := handlers.NewLessonsHandler(lessonService, completionService, logger.Logger)
	quizHandler := handlers.NewQuizHandler(quizService, logger.Logger)
	rewardHandler := handlers.NewRewardHandler(rewardService, logger.Logger)
	profileHandler := handlers.NewProfileHandler(profileService, logger.Logger)
	languageHandler := handlers.NewLanguageHandler(logger.Logger)

	// Initialize auth middleware
	authMiddleware := authmw.AuthMiddleware(tokenGenerator)
	optionalAuthMiddleware := authmw.OptionalAuthMiddleware(tokenGenerator)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware)

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Register routes
	lessonsHandler.RegisterRoutes(r, optionalAuthMiddleware)
	quizHandler.RegisterRoutes(r, optionalAuthMiddleware)
	rewardHandler.RegisterRoutes(r)
	profileHandler.RegisterRoutes(r, authMiddleware)
	languageHandler.RegisterRoutes(r)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := migratemysql.WithInstance(db, &migratemysql.Config{
		MigrationsTable: "lessons_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
