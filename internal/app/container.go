package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/felixgeelhaar/astrosched/internal/ephemeris"
	"github.com/felixgeelhaar/astrosched/internal/scheduling/application/commands"
	"github.com/felixgeelhaar/astrosched/internal/scheduling/application/services"
	schedulingDomain "github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
	"github.com/felixgeelhaar/astrosched/internal/scheduling/infrastructure/persistence"
	"github.com/felixgeelhaar/astrosched/internal/shared/infrastructure/database/postgres"
	"github.com/felixgeelhaar/astrosched/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/astrosched/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/astrosched/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database (one of the two is set depending on configuration)
	Pool     *pgxpool.Pool
	SQLiteDB *sql.DB

	// Redis (nil when no cache is configured)
	RedisClient *redis.Client

	// Repositories
	RuleRepo      schedulingDomain.RuleRepository
	ScheduledRepo schedulingDomain.ScheduledSequenceRepository

	// Ephemeris
	Provider ephemeris.Provider
	Phases   ephemeris.PhaseCalculator

	// Publisher
	EventPublisher eventbus.Publisher

	// Services
	Evaluator *services.ConditionEvaluator
	Ranker    *services.PriorityRanker
	Slots     *services.SlotFinder
	Scheduler *services.Scheduler
	Tracker   *services.Tracker
	Rules     *services.RuleService

	// Command Handlers
	RunScheduleHandler *commands.RunScheduleHandler
}

// NewContainer wires all dependencies from configuration.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := newLogger(cfg)

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}
	c.initEphemeris()
	c.initEventPublisher()
	c.initServices()

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	if c.Config.DatabaseURL != "" {
		pool, err := postgres.Open(ctx, c.Config.DatabaseURL, 10)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		if err := persistence.EnsurePostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("ensure postgres schema: %w", err)
		}
		c.Pool = pool
		c.RuleRepo = persistence.NewPostgresRuleRepository(pool)
		c.ScheduledRepo = persistence.NewPostgresScheduledRepository(pool)
		c.Logger.Info("using postgres storage")
		return nil
	}

	db, err := sqlite.Open(ctx, c.Config.SQLitePath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	if err := persistence.EnsureSQLiteSchema(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("ensure sqlite schema: %w", err)
	}
	c.SQLiteDB = db
	c.RuleRepo = persistence.NewSQLiteRuleRepository(db)
	c.ScheduledRepo = persistence.NewSQLiteScheduledRepository(db)
	c.Logger.Info("using sqlite storage", "path", c.Config.SQLitePath)
	return nil
}

func (c *Container) initEphemeris() {
	var provider ephemeris.Provider = ephemeris.NewAltAzProvider()

	provider = ephemeris.NewBreakerProvider(provider, ephemeris.BreakerConfig{
		MaxRequests:      uint32(c.Config.BreakerMaxRequests),
		Interval:         c.Config.BreakerInterval,
		Timeout:          c.Config.BreakerTimeout,
		FailureThreshold: uint32(c.Config.BreakerFailureThreshold),
	}, c.Logger)

	if c.Config.RedisURL != "" {
		opts, err := redis.ParseURL(c.Config.RedisURL)
		if err != nil {
			c.Logger.Warn("invalid redis url, running without ephemeris cache", "error", err)
		} else {
			c.RedisClient = redis.NewClient(opts)
			provider = ephemeris.NewCachingProvider(provider, c.RedisClient, c.Config.EphemerisCacheTTL, c.Logger)
		}
	}

	c.Provider = provider
	c.Phases = ephemeris.JulianPhaseCalculator{}
}

func (c *Container) initEventPublisher() {
	if c.Config.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}
	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		c.Logger.Warn("rabbitmq unavailable, events will not be published", "error", err)
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}
	c.EventPublisher = publisher
}

func (c *Container) initServices() {
	c.Evaluator = services.NewConditionEvaluator(c.Provider, c.Phases)
	c.Ranker = services.NewPriorityRanker(c.Provider)
	c.Slots = services.NewSlotFinder(c.Provider, services.SlotFinderConfig{
		Increment:   c.Config.SlotIncrement,
		SampleEdges: c.Config.SampleEdges,
	})
	c.Scheduler = services.NewScheduler(c.Ranker, c.Slots, c.Logger)
	c.Tracker = services.NewTracker(c.ScheduledRepo, c.EventPublisher, c.Logger)
	c.Rules = services.NewRuleService(c.RuleRepo, c.Logger)

	c.RunScheduleHandler = commands.NewRunScheduleHandler(c.Scheduler, c.ScheduledRepo, c.EventPublisher, c.Logger)
}

// Close releases all resources held by the container.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close redis client", "error", err)
		}
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("failed to close sqlite database", "error", err)
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
