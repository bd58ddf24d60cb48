package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/auradaily/aura-api/internal/config"
	"github.com/auradaily/aura-api/internal/domain/energy"
	"github.com/auradaily/aura-api/internal/events"
	"github.com/auradaily/aura-api/internal/narrative"
	"github.com/auradaily/aura-api/internal/platform/gemini"
	"github.com/auradaily/aura-api/internal/platform/postgres"
	"github.com/auradaily/aura-api/internal/service"
	"github.com/auradaily/aura-api/internal/service/auth"
	"github.com/auradaily/aura-api/internal/store"
	"github.com/auradaily/aura-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore        store.UserStore
	lifestyleStore   store.LifestyleStore
	scoreStore       store.ScoreStore
	correlationStore store.CorrelationStore
	taskStore        task.TaskStore

	// Services
	jwtService       auth.JWTService
	energyService    energy.Service
	userService      service.UserService
	lifestyleService service.LifestyleService
	readingService   service.ReadingService
	insightService   service.InsightService

	// Presentation and transport
	narrator  narrative.Generator
	publisher events.ReadingPublisher

	// Background processing
	eventEmitter events.EventEmitter
	taskRunner   *task.TaskRunner
}

// newApplication creates a new application instance with all
// dependencies initialized. Core dependencies (configuration, logger,
// database connection) must already be established.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, bcryptCost, logger)
	app.lifestyleStore = postgres.NewPostgresLifestyleStore(db, logger)
	app.scoreStore = postgres.NewPostgresScoreStore(db, logger)
	app.correlationStore = postgres.NewPostgresCorrelationStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Deterministic scoring pipeline
	app.energyService = energy.NewDefaultService()

	// Narrative generator: LLM-backed when enabled, template otherwise.
	if cfg.Narrative.Enabled {
		app.narrator, err = gemini.NewNarrator(ctx, logger, cfg.Narrative)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize narrative generator: %w", err)
		}
		logger.Info("LLM narrative generator initialized")
	} else {
		app.narrator = narrative.NewTemplateGenerator()
		logger.Info("Template narrative generator initialized")
	}

	// Reading-computed event publisher
	if cfg.Events.KafkaEnabled {
		app.publisher = events.NewKafkaReadingPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic, logger)
		logger.Info("Kafka reading publisher initialized",
			"topic", cfg.Events.KafkaTopic,
			"brokers", len(cfg.Events.KafkaBrokers))
	} else {
		app.publisher = events.NoopReadingPublisher{}
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	app.taskRunner, err = setupTaskRunner(app)
	if err != nil {
		return nil, fmt.Errorf("failed to setup task runner: %w", err)
	}

	// Services
	app.userService = service.NewUserService(app.userStore, auth.NewBcryptVerifier(), db, logger)
	app.lifestyleService = service.NewLifestyleService(app.lifestyleStore, app.eventEmitter, db, logger)
	app.insightService = service.NewInsightService(
		app.lifestyleStore,
		app.scoreStore,
		app.correlationStore,
		db,
		logger,
	)
	app.readingService, err = service.NewReadingService(
		app.userStore,
		app.lifestyleStore,
		app.scoreStore,
		app.correlationStore,
		app.energyService,
		app.narrator,
		app.publisher,
		app.eventEmitter,
		db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create reading service: %w", err)
	}

	// Wire correlation recompute events to background tasks.
	taskFactory := task.NewCorrelationRecomputeTaskFactory(app.insightService, logger)
	taskFactoryHandler := task.NewTaskFactoryEventHandler(taskFactory, app.taskRunner, logger)

	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(taskFactoryHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	// Requeue tasks left over from a previous run.
	if err := app.taskRunner.Recover(); err != nil {
		return nil, fmt.Errorf("failed to recover pending tasks: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// setupTaskRunner initializes and starts the background task processor.
func setupTaskRunner(app *application) (*task.TaskRunner, error) {
	cfg := task.DefaultTaskRunnerConfig()
	if app.config.Task.WorkerCount > 0 {
		cfg.WorkerCount = app.config.Task.WorkerCount
	}
	if app.config.Task.QueueSize > 0 {
		cfg.QueueSize = app.config.Task.QueueSize
	}
	if app.config.Task.StuckTaskAgeMinutes > 0 {
		cfg.StuckTaskAge = time.Duration(app.config.Task.StuckTaskAgeMinutes) * time.Minute
	}

	taskRunner := task.NewTaskRunner(app.taskStore, cfg, app.logger)
	if err := taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}
	return taskRunner, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("Error closing event publisher", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
