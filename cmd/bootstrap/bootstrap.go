package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careconnect-api/config"
	deliveryHttp "careconnect-api/internal/delivery/http"
	"careconnect-api/internal/delivery/http/handler"
	"careconnect-api/internal/delivery/http/middleware"
	"careconnect-api/internal/infrastructure/cache"
	"careconnect-api/internal/infrastructure/database"
	"careconnect-api/internal/infrastructure/storage"
	"careconnect-api/internal/repository"
	"careconnect-api/internal/service"
	"careconnect-api/internal/usecase"
	"careconnect-api/pkg/jwt"
	"careconnect-api/pkg/validator"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize MinIO
	minioClient, err := storage.NewMinioClient(cfg.Minio)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient, minioClient)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, minioClient *minio.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	doctorProfileRepo := repository.NewDoctorProfileRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	codeStore := service.NewRedisCodeStore(redisClient)
	mailer := service.NewSMTPMailer(cfg.SMTP, log)
	fileStorage := service.NewMinioStorage(minioClient, cfg.Minio)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, jwtService, redisClient)
	registrationUsecase := usecase.NewRegistrationUsecase(log, userRepo, doctorProfileRepo, codeStore, mailer, fileStorage, auditService, cfg.OTP, cfg.App)
	adminUsecase := usecase.NewAdminUsecase(log, userRepo, doctorProfileRepo, auditLogRepo, fileStorage, auditService, redisClient)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo, auditService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	doctorHandler := handler.NewDoctorHandler(registrationUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, doctorHandler, adminHandler, patientHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
