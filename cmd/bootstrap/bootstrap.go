package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-management-api/config"
	deliveryHttp "clinic-management-api/internal/delivery/http"
	"clinic-management-api/internal/delivery/http/handler"
	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/infrastructure/cache"
	"clinic-management-api/internal/infrastructure/database"
	"clinic-management-api/internal/repository"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/jwt"
	"clinic-management-api/pkg/validator"

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

	// Apply schema migrations before opening the pool
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
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

	// Seed the bootstrap administrator
	employeeRepo := repository.NewEmployeeRepository(db)
	if err := database.SeedAdmin(context.Background(), employeeRepo, cfg.Seed); err != nil {
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	examRepo := repository.NewExamRepository(db)
	encounterRepo := repository.NewEncounterRepository(db)

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize login limiter
	loginLimiter := cache.NewLoginAttemptLimiter(redisClient, cfg.Login)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, employeeRepo, jwtService, loginLimiter)
	employeeUsecase := usecase.NewEmployeeUsecase(log, employeeRepo)
	patientUsecase := usecase.NewPatientUsecase(log, patientRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, patientRepo, employeeRepo)
	examUsecase := usecase.NewExamUsecase(log, examRepo, patientRepo, employeeRepo)
	encounterUsecase := usecase.NewEncounterUsecase(log, encounterRepo, patientRepo, employeeRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	employeeHandler := handler.NewEmployeeHandler(employeeUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	examHandler := handler.NewExamHandler(examUsecase, customValidator)
	encounterHandler := handler.NewEncounterHandler(encounterUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, employeeRepo)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		employeeHandler,
		patientHandler,
		appointmentHandler,
		examHandler,
		encounterHandler,
		authMiddleware,
		corsMiddleware,
	)
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
