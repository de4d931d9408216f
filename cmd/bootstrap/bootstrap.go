package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inpatient-registration/config"
	"inpatient-registration/internal/delivery/dto"
	deliveryHttp "inpatient-registration/internal/delivery/http"
	"inpatient-registration/internal/delivery/http/handler"
	"inpatient-registration/internal/delivery/http/middleware"
	domainRepo "inpatient-registration/internal/domain/repository"
	"inpatient-registration/internal/infrastructure/cache"
	"inpatient-registration/internal/infrastructure/database"
	"inpatient-registration/internal/observability/metrics"
	"inpatient-registration/internal/registry"
	"inpatient-registration/internal/repository"
	"inpatient-registration/internal/service"
	"inpatient-registration/internal/usecase"
	"inpatient-registration/pkg/circuitbreaker"
	"inpatient-registration/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const patientStoreBreaker = "patient-store"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Store       domainRepo.PatientStore
	Registry    *registry.PatientRegistry
	Server      *http.Server
}

// New creates the HTTP server application with all dependencies initialized
func New() (*App, error) {
	m := metrics.New(prometheus.DefaultRegisterer)

	app, err := newBase(m)
	if err != nil {
		return nil, err
	}

	if app.Config.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(app.Config.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		app.Log.Info("Redis connected successfully")
	}

	app.Server = app.initializeServer(m)

	return app, nil
}

// NewCLI creates an application with configuration, logger and patient store
// only, for one-shot commands.
func NewCLI() (*App, error) {
	return newBase(nil)
}

func newBase(m *metrics.Metrics) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{
		Config:   cfg,
		Log:      setupLogger(cfg.App),
		Registry: registry.New(),
	}
	app.Log.Info("Configuration loaded successfully")

	if err := app.initializeStore(m); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// initializeStore picks the remote patient store and wraps it in a circuit breaker
func (app *App) initializeStore(m *metrics.Metrics) error {
	cfg := app.Config

	var store domainRepo.PatientStore
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env == "development")
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		app.Log.Info("Database connected successfully")

		if cfg.DB.AutoMigrate {
			if err := database.Migrate(db, database.Up); err != nil {
				return err
			}
		}
		store = repository.NewPatientRepository(db)
	default:
		store = repository.NewMemoryPatientStore(repository.MockPatients(), cfg.Store.LoadDelay, cfg.Store.InsertDelay)
		app.Log.Infof("Using in-memory patient store (load delay %s, insert delay %s)", cfg.Store.LoadDelay, cfg.Store.InsertDelay)
	}

	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:             patientStoreBreaker,
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         cfg.Breaker.Interval,
		Timeout:          cfg.Breaker.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		IsSuccessful:     repository.StoreCallSucceeded,
	}, app.Log, func(name string, _, to circuitbreaker.State) {
		m.SetBreakerState(name, to.Value())
	})

	app.Store = repository.NewBreakerPatientStore(store, breaker)
	return nil
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(m *metrics.Metrics) *http.Server {
	cfg := app.Config
	log := app.Log

	// Initialize validator
	customValidator := validator.NewValidator(
		validator.WithFieldLabels(dto.PatientFieldLabels),
		validator.WithStrictAdmissionDate(cfg.Registry.StrictAdmissionDate),
	)

	// Initialize notifier and admission lock
	notifiers := []service.Notifier{service.NewLogNotifier(log)}
	locker := service.NewLocalAdmissionLocker()
	if app.RedisClient != nil {
		notifiers = append(notifiers, service.NewRedisNotifier(app.RedisClient, cfg.Admission.NotifyChannel, log))
		locker = service.NewRedisAdmissionLocker(app.RedisClient, cfg.Admission.LockTTL)
	}

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(log, app.Registry, app.Store, m)
	admissionUsecase := usecase.NewPatientAdmissionUsecase(
		log,
		customValidator,
		app.Registry,
		app.Store,
		locker,
		service.NewMultiNotifier(notifiers...),
		m,
	)

	// Seed the registry before accepting traffic
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.LoadTimeout)
	defer cancel()
	if _, err := patientUsecase.LoadRegistry(ctx); err != nil {
		log.Warnf("Starting with an empty registry: %+v", err)
	}

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, admissionUsecase, cfg.Registry.PageSize, cfg.Registry.MaxPageSize)

	// Initialize middleware
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(patientHandler, loggingMiddleware, corsMiddleware, metrics.Handler())
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
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

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
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
